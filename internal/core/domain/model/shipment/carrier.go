package shipment

import (
	"fmt"
	"net/url"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Carrier identifies the delivery company that picks up a group.
type Carrier string

const (
	CarrierFedex     Carrier = "fedex"
	CarrierYamato    Carrier = "yamato"
	CarrierSagawa    Carrier = "sagawa"
	CarrierYupack    Carrier = "yupack"
	CarrierJapanPost Carrier = "japanpost"
)

var trackingTemplates = map[Carrier]string{
	CarrierFedex:     "https://www.fedex.com/apps/fedextrack/?tracknumbers=%s",
	CarrierYamato:    "https://toi.kuronekoyamato.co.jp/cgi-bin/tneko?number01=%s",
	CarrierSagawa:    "https://k2k.sagawa-exp.co.jp/p/sagawa/web/okurijoinput.jsp?okurijoNo=%s",
	CarrierYupack:    "https://trackings.post.japanpost.jp/services/srv/search/?requestNo1=%s",
	CarrierJapanPost: "https://trackings.post.japanpost.jp/services/srv/search/?requestNo1=%s",
}

// ParseCarrier normalizes a carrier name. Carriers without a tracking
// template are accepted; their URLs fall back to a web search.
func ParseCarrier(s string) (Carrier, error) {
	c := Carrier(strings.ToLower(strings.TrimSpace(s)))
	if c == "" {
		return "", errs.NewValueIsRequiredError("carrier")
	}
	if strings.ContainsAny(string(c), " \t\n/") {
		return "", errs.NewValueIsInvalidErrorWithCause("carrier", fmt.Errorf("%q contains whitespace or slashes", s))
	}
	return c, nil
}

func (c Carrier) String() string {
	return string(c)
}

// IsKnown reports whether c has a public tracking page.
func (c Carrier) IsKnown() bool {
	_, ok := trackingTemplates[c]
	return ok
}

// TrackingURL builds the public tracking page for number. An empty number
// yields an empty URL.
func (c Carrier) TrackingURL(number string) string {
	if number == "" {
		return ""
	}
	escaped := url.QueryEscape(number)
	if tmpl, ok := trackingTemplates[c]; ok {
		return fmt.Sprintf(tmpl, escaped)
	}
	return "https://www.google.com/search?q=" + url.QueryEscape(string(c)+" "+number)
}
