package payload

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestURLFields_Encode_AddsHTTPSPrefix(t *testing.T) {
	// Arrange
	fields := URLFields{URL: "example.com"}

	// Act
	encoded := fields.Encode()

	// Assert
	assert.Equal(t, "https://example.com", encoded)
}

func TestURLFields_Encode_KeepsExistingScheme(t *testing.T) {
	assert.Equal(t, "http://example.com", URLFields{URL: "http://example.com"}.Encode())
	assert.Equal(t, "https://example.com", URLFields{URL: "https://example.com"}.Encode())
}

func TestURLFields_Encode_PrefixCheckIsCaseSensitive(t *testing.T) {
	// "HTTP://" is not in the recognized prefix set, so it gets prefixed
	assert.Equal(t, "https://HTTP://example.com", URLFields{URL: "HTTP://example.com"}.Encode())
}

func TestURLFields_Encode_NoOtherNormalization(t *testing.T) {
	// No trailing slash insertion, no lowercasing
	assert.Equal(t, "https://Example.COM/Path", URLFields{URL: "Example.COM/Path"}.Encode())
}

func TestWifiFields_Encode_AllFields(t *testing.T) {
	// Arrange
	fields := WifiFields{
		SSID:     "Home",
		Security: SecurityWPA,
		Password: "secret",
		Hidden:   true,
	}

	// Act
	encoded := fields.Encode()

	// Assert
	assert.Equal(t, "WIFI:T:WPA;S:Home;P:secret;H:true;;", encoded)
}

func TestWifiFields_Encode_NoPassword(t *testing.T) {
	// Arrange - open network without a password
	fields := WifiFields{
		SSID:     "Guest",
		Security: SecurityNoPass,
		Hidden:   false,
	}

	// Act
	encoded := fields.Encode()

	// Assert - empty P: placeholder is kept, hidden flag is the literal "false"
	assert.Equal(t, "WIFI:T:nopass;S:Guest;P:;H:false;;", encoded)
}

func TestWifiFields_Encode_WEP(t *testing.T) {
	fields := WifiFields{SSID: "Legacy", Security: SecurityWEP, Password: "0123456789"}
	assert.Equal(t, "WIFI:T:WEP;S:Legacy;P:0123456789;H:false;;", fields.Encode())
}

func TestWifiFields_Encode_DelimitersNotEscaped(t *testing.T) {
	// Known limitation: delimiter characters pass through verbatim
	fields := WifiFields{SSID: "a;b", Security: SecurityWPA, Password: "c:d"}
	assert.Equal(t, "WIFI:T:WPA;S:a;b;P:c:d;H:false;;", fields.Encode())
}

func TestContactFields_Encode_FullCard(t *testing.T) {
	// Arrange
	fields := ContactFields{
		FirstName:    "John",
		LastName:     "Doe",
		Phone:        "+15551234567",
		Email:        "john@example.com",
		Organization: "ACME",
		URL:          "https://example.com",
	}

	// Act
	encoded := fields.Encode()

	// Assert
	expected := "BEGIN:VCARD\n" +
		"VERSION:3.0\n" +
		"FN:John Doe\n" +
		"ORG:ACME\n" +
		"TEL:+15551234567\n" +
		"EMAIL:john@example.com\n" +
		"URL:https://example.com\n" +
		"END:VCARD"
	assert.Equal(t, expected, encoded)
}

func TestContactFields_Encode_OptionalFieldsEmitEmptyValues(t *testing.T) {
	// Arrange - only the required first name
	fields := ContactFields{FirstName: "John"}

	// Act
	encoded := fields.Encode()

	// Assert - empty lines are kept, not omitted; FN keeps its trailing space
	lines := strings.Split(encoded, "\n")
	assert.Equal(t, []string{
		"BEGIN:VCARD",
		"VERSION:3.0",
		"FN:John ",
		"ORG:",
		"TEL:",
		"EMAIL:",
		"URL:",
		"END:VCARD",
	}, lines)
}

func TestContactFields_Encode_ContainsFullName(t *testing.T) {
	encoded := ContactFields{FirstName: "John", LastName: "Doe"}.Encode()
	assert.Contains(t, encoded, "FN:John Doe")
	assert.True(t, strings.HasPrefix(encoded, "BEGIN:VCARD\nVERSION:3.0\n"))
	assert.True(t, strings.HasSuffix(encoded, "END:VCARD"))
}

func TestTextFields_Encode_Identity(t *testing.T) {
	text := "hello world\nwith newline; and delimiters:,"
	assert.Equal(t, text, TextFields{Text: text}.Encode())
}

func TestTextFields_Encode_Idempotent(t *testing.T) {
	// Re-encoding the output of a text payload is the identity
	first := TextFields{Text: "some payload"}.Encode()
	second := TextFields{Text: first}.Encode()
	assert.Equal(t, first, second)
}

func TestEmailFields_Encode_PercentEncodesSubject(t *testing.T) {
	// Arrange
	fields := EmailFields{
		Email:   "a@b.com",
		Subject: "Hi there",
	}

	// Act
	encoded := fields.Encode()

	// Assert - space becomes %20 and the empty body parameter is still emitted
	assert.Equal(t, "mailto:a@b.com?subject=Hi%20there&body=", encoded)
}

func TestEmailFields_Encode_EmptyOptionalFields(t *testing.T) {
	encoded := EmailFields{Email: "a@b.com"}.Encode()
	assert.Equal(t, "mailto:a@b.com?subject=&body=", encoded)
}

func TestEmailFields_Encode_ReservedCharacters(t *testing.T) {
	fields := EmailFields{
		Email:   "a@b.com",
		Subject: "Q&A",
		Body:    "1+1=2",
	}
	encoded := fields.Encode()
	assert.Equal(t, "mailto:a@b.com?subject=Q%26A&body=1%2B1%3D2", encoded)
}

func TestSmsFields_Encode_EmptyMessageOmitsBody(t *testing.T) {
	// Arrange
	fields := SmsFields{Phone: "+15551234567"}

	// Act
	encoded := fields.Encode()

	// Assert - no ?body= segment at all
	assert.Equal(t, "sms:+15551234567", encoded)
	assert.NotContains(t, encoded, "?body=")
}

func TestSmsFields_Encode_MessagePercentEncoded(t *testing.T) {
	fields := SmsFields{Phone: "+15551234567", Message: "see you at 5 pm"}
	assert.Equal(t, "sms:+15551234567?body=see%20you%20at%205%20pm", fields.Encode())
}

func TestEncode_Deterministic(t *testing.T) {
	payloads := []Payload{
		URLFields{URL: "example.com"},
		WifiFields{SSID: "Home", Security: SecurityWPA, Password: "secret", Hidden: true},
		ContactFields{FirstName: "John", LastName: "Doe"},
		TextFields{Text: "plain text"},
		EmailFields{Email: "a@b.com", Subject: "Hi there"},
		SmsFields{Phone: "+15551234567", Message: "hello"},
	}

	for _, p := range payloads {
		assert.Equal(t, p.Encode(), p.Encode(), "payload type %s must encode deterministically", p.Type())
	}
}

func TestPayload_TypeTags(t *testing.T) {
	assert.Equal(t, TypeURL, URLFields{}.Type())
	assert.Equal(t, TypeWifi, WifiFields{}.Type())
	assert.Equal(t, TypeContact, ContactFields{}.Type())
	assert.Equal(t, TypeText, TextFields{}.Type())
	assert.Equal(t, TypeEmail, EmailFields{}.Type())
	assert.Equal(t, TypeSms, SmsFields{}.Type())
}
