package soap

import (
	"fmt"
	"strings"

	"github.com/icutech/auth-gateway/internal/domain"
)

const (
	// EnvelopeNS is the SOAP 1.1 envelope namespace.
	EnvelopeNS = "http://schemas.xmlsoap.org/soap/envelope/"
	// OperationNS is the namespace of the icutech authentication operations.
	OperationNS = "http://tempuri.org/"
)

// BuildLoginEnvelope produces the SOAP 1.1 request envelope for the Login
// operation. Pure function of its inputs.
func BuildLoginEnvelope(login, password string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="utf-8"?>
<soap:Envelope xmlns:soap="%s">
    <soap:Body>
        <Login xmlns="%s">
            <login>%s</login>
            <password>%s</password>
        </Login>
    </soap:Body>
</soap:Envelope>`, EnvelopeNS, OperationNS, EscapeXML(login), EscapeXML(password))
}

// BuildRegisterEnvelope produces the SOAP 1.1 request envelope for the
// RegisterNewCustomer operation. Optional fields that are absent or blank are
// omitted from the envelope entirely.
func BuildRegisterEnvelope(req domain.RegisterRequest) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="utf-8"?>
<soap:Envelope xmlns:soap="%s">
    <soap:Body>
        <RegisterNewCustomer xmlns="%s">
            <login>%s</login>
            <password>%s</password>
            %s%s%s
        </RegisterNewCustomer>
    </soap:Body>
</soap:Envelope>`, EnvelopeNS, OperationNS,
		EscapeXML(req.Login), EscapeXML(req.Password),
		optionalElement("email", req.Email),
		optionalElement("firstName", req.FirstName),
		optionalElement("lastName", req.LastName))
}

func optionalElement(name string, value *string) string {
	if value == nil || strings.TrimSpace(*value) == "" {
		return ""
	}
	return fmt.Sprintf("<%s>%s</%s>", name, EscapeXML(*value), name)
}

// EscapeXML escapes the five reserved XML characters in value. The ampersand
// is replaced first so already-escaped output is never escaped twice.
func EscapeXML(value string) string {
	value = strings.ReplaceAll(value, "&", "&amp;")
	value = strings.ReplaceAll(value, "<", "&lt;")
	value = strings.ReplaceAll(value, ">", "&gt;")
	value = strings.ReplaceAll(value, `"`, "&quot;")
	value = strings.ReplaceAll(value, "'", "&apos;")
	return value
}
