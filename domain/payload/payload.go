package payload

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Type identifies which encoding rule applies to a payload
type Type string

// Supported payload types
const (
	TypeURL     Type = "url"
	TypeWifi    Type = "wifi"
	TypeContact Type = "contact"
	TypeText    Type = "text"
	TypeEmail   Type = "email"
	TypeSms     Type = "sms"
)

// WifiSecurity is the WiFi network security mode emitted verbatim in the
// WIFI: string
type WifiSecurity string

// Supported WiFi security modes
const (
	SecurityWPA    WifiSecurity = "WPA"
	SecurityWEP    WifiSecurity = "WEP"
	SecurityNoPass WifiSecurity = "nopass"
)

// Payload is a typed field set that knows how to produce the literal text
// embedded in a QR symbol. Each payload type carries only its own fields, so
// an encoder branch can never read a field that does not exist for its type.
//
// Encode is pure and total: it trusts its input (required fields are
// validated upstream) and never fails. Identical input produces
// byte-identical output.
type Payload interface {
	Type() Type
	Encode() string
}

// URLFields is the field set for a URL payload
type URLFields struct {
	URL string
}

// Type returns the payload type tag
func (f URLFields) Type() Type { return TypeURL }

// Encode passes the URL through unchanged when it already carries an
// http:// or https:// prefix (case-sensitive), and prefixes https://
// otherwise. No other normalization is applied.
func (f URLFields) Encode() string {
	if strings.HasPrefix(f.URL, "http://") || strings.HasPrefix(f.URL, "https://") {
		return f.URL
	}
	return "https://" + f.URL
}

// WifiFields is the field set for a WiFi credentials payload. Password and
// Hidden are optional; an absent password encodes as an empty P: value.
type WifiFields struct {
	SSID     string
	Security WifiSecurity
	Password string
	Hidden   bool
}

// Type returns the payload type tag
func (f WifiFields) Type() Type { return TypeWifi }

// Encode produces the WIFI: network string, double-semicolon terminated.
// Delimiter characters inside SSID or password are not escaped; this follows
// the common WiFi-QR convention and is a known limitation for values
// containing ';', ',', ':' or '\'.
func (f WifiFields) Encode() string {
	return fmt.Sprintf("WIFI:T:%s;S:%s;P:%s;H:%s;;",
		f.Security, f.SSID, f.Password, strconv.FormatBool(f.Hidden))
}

// ContactFields is the field set for a contact card payload. Only FirstName
// is required; absent optional fields encode as lines with empty values.
type ContactFields struct {
	FirstName    string
	LastName     string
	Phone        string
	Email        string
	Organization string
	URL          string
}

// Type returns the payload type tag
func (f ContactFields) Type() Type { return TypeContact }

// Encode produces a vCard 3.0 record with newline-separated lines. Every
// optional field is emitted even when empty (e.g. "ORG:"), and FN always
// keeps the space between first and last name.
func (f ContactFields) Encode() string {
	lines := []string{
		"BEGIN:VCARD",
		"VERSION:3.0",
		"FN:" + f.FirstName + " " + f.LastName,
		"ORG:" + f.Organization,
		"TEL:" + f.Phone,
		"EMAIL:" + f.Email,
		"URL:" + f.URL,
		"END:VCARD",
	}
	return strings.Join(lines, "\n")
}

// TextFields is the field set for a plain text payload
type TextFields struct {
	Text string
}

// Type returns the payload type tag
func (f TextFields) Type() Type { return TypeText }

// Encode is the identity transformation
func (f TextFields) Encode() string {
	return f.Text
}

// EmailFields is the field set for an email payload. Subject and Body are
// optional and default to empty strings before percent-encoding.
type EmailFields struct {
	Email   string
	Subject string
	Body    string
}

// Type returns the payload type tag
func (f EmailFields) Type() Type { return TypeEmail }

// Encode produces a mailto: URI. Both query parameters are always present,
// even when empty.
func (f EmailFields) Encode() string {
	return "mailto:" + f.Email +
		"?subject=" + escapeComponent(f.Subject) +
		"&body=" + escapeComponent(f.Body)
}

// SmsFields is the field set for an SMS payload. Message is optional.
type SmsFields struct {
	Phone   string
	Message string
}

// Type returns the payload type tag
func (f SmsFields) Type() Type { return TypeSms }

// Encode produces an sms: URI. The ?body= segment is emitted only when the
// message is non-empty, unlike the WiFi and contact encodings which keep
// empty placeholders.
func (f SmsFields) Encode() string {
	if f.Message == "" {
		return "sms:" + f.Phone
	}
	return "sms:" + f.Phone + "?body=" + escapeComponent(f.Message)
}

// escapeComponent percent-encodes a URI query component, encoding spaces as
// %20 rather than '+'
func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
