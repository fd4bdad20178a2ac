package soap

import (
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/icutech/auth-gateway/internal/domain"
)

// unprocessableMessage is the recoverable outcome reported when the upstream
// answered with XML that does not contain the expected result element.
const unprocessableMessage = "could not process the response from the authentication service"

type loginEnvelope struct {
	Body struct {
		Response struct {
			Result *loginResultXML `xml:"LoginResult"`
		} `xml:"LoginResponse"`
	} `xml:"Body"`
}

type loginResultXML struct {
	Success       *string           `xml:"Success"`
	Message       string            `xml:"Message"`
	EntityDetails *entityDetailsXML `xml:"EntityDetails"`
}

type registerEnvelope struct {
	Body struct {
		Response struct {
			Result *registerResultXML `xml:"RegisterNewCustomerResult"`
		} `xml:"RegisterNewCustomerResponse"`
	} `xml:"Body"`
}

type registerResultXML struct {
	Success           *string `xml:"Success"`
	Message           string  `xml:"Message"`
	CreatedCustomerID string  `xml:"CreatedCustomerId"`
	Text              string  `xml:",chardata"`
}

type entityDetailsXML struct {
	Text     string        `xml:",chardata"`
	Inner    string        `xml:",innerxml"`
	Children []entityChild `xml:",any"`
}

type entityChild struct {
	XMLName xml.Name
	Text    string `xml:",chardata"`
}

// ParseLoginResponse turns a raw SOAP response body into a LoginResult.
// An upstream HTML error page or unparseable XML yields a ClientError of kind
// KindMalformedResponse; a parseable envelope without the expected result
// element yields a failed, recoverable result.
func ParseLoginResponse(body string) (*domain.LoginResult, error) {
	if err := sniffContent(body); err != nil {
		return nil, err
	}

	var env loginEnvelope
	if err := xml.Unmarshal([]byte(body), &env); err != nil {
		return nil, &ClientError{
			Kind:    KindMalformedResponse,
			Message: "the authentication service response has an invalid format",
			Body:    body,
			Err:     err,
		}
	}

	result := env.Body.Response.Result
	if result == nil {
		return &domain.LoginResult{Success: false, Message: unprocessableMessage}, nil
	}

	return &domain.LoginResult{
		Success:       parseBool(result.Success),
		Message:       result.Message,
		EntityDetails: entityDetailsValue(result.EntityDetails),
	}, nil
}

// ParseRegisterResponse turns a raw SOAP response body into a RegisterResult,
// with the same failure semantics as ParseLoginResponse.
func ParseRegisterResponse(body string) (*domain.RegisterResult, error) {
	if err := sniffContent(body); err != nil {
		return nil, err
	}

	var env registerEnvelope
	if err := xml.Unmarshal([]byte(body), &env); err != nil {
		return nil, &ClientError{
			Kind:    KindMalformedResponse,
			Message: "the authentication service response has an invalid format",
			Body:    body,
			Err:     err,
		}
	}

	result := env.Body.Response.Result
	if result == nil {
		return &domain.RegisterResult{Success: false, Message: unprocessableMessage}, nil
	}

	if result.Success == nil {
		// Last-resort fallback: the result element exists but carries no
		// structured Success field, only raw text. Scan the text for failure
		// markers to decide the outcome.
		text := strings.TrimSpace(result.Text)
		return &domain.RegisterResult{
			Success: text != "" && !containsFailureMarker(text),
			Message: text,
		}, nil
	}

	return &domain.RegisterResult{
		Success:           parseBool(result.Success),
		Message:           result.Message,
		CreatedCustomerID: result.CreatedCustomerID,
	}, nil
}

// sniffContent rejects bodies that are HTML error pages rather than SOAP.
// The upstream is known to answer some failures with an HTML page; such bodies
// must never be fed to the XML parser.
func sniffContent(body string) error {
	lower := strings.ToLower(body)
	if strings.Contains(lower, "<!doctype") || strings.Contains(lower, "<html") {
		return &ClientError{
			Kind:    KindMalformedResponse,
			Message: "the authentication service returned an unexpected content type",
			Body:    body,
		}
	}
	return nil
}

// parseBool resolves anything that is not a valid boolean token to false.
func parseBool(value *string) bool {
	if value == nil {
		return false
	}
	b, err := strconv.ParseBool(strings.TrimSpace(*value))
	return err == nil && b
}

// entityDetailsValue maps the EntityDetails element to its opaque value: the
// element text when non-empty, a map of child elements when it has structure,
// the raw inner XML otherwise, and nil when the element is absent.
func entityDetailsValue(el *entityDetailsXML) any {
	if el == nil {
		return nil
	}
	if text := strings.TrimSpace(el.Text); text != "" {
		return text
	}
	if len(el.Children) > 0 {
		details := make(map[string]any, len(el.Children))
		for _, child := range el.Children {
			details[child.XMLName.Local] = child.Text
		}
		return details
	}
	return el.Inner
}

func containsFailureMarker(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "error") ||
		strings.Contains(lower, "failed") ||
		strings.Contains(lower, "already exists")
}
