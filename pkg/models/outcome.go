package models

import (
	"fmt"
	"net/http"
)

// Kind classifies how a relay request ended
type Kind int

const (
	KindOK Kind = iota
	KindMethodNotAllowed
	KindMalformedInput
	KindValidationFailed
	KindConfigUnavailable
	KindTransportFailure
	KindUpstreamRejected
)

// User-facing messages. Only these strings ever reach the caller.
const (
	MessageSent              = "Заявка отправлена"
	MessageMethodNotAllowed  = "Method Not Allowed"
	MessageMalformedInput    = "Некорректный формат данных"
	MessageValidationFailed  = "Заполните все поля корректно"
	MessageConfigUnavailable = "Сервис временно недоступен"
	MessageTransportFailure  = "Ошибка соединения с 1С"
	MessageUpstreamRejected  = "1С вернула ошибку"
)

var kindNames = map[Kind]string{
	KindOK:                "ok",
	KindMethodNotAllowed:  "method_not_allowed",
	KindMalformedInput:    "malformed_input",
	KindValidationFailed:  "validation_failed",
	KindConfigUnavailable: "config_unavailable",
	KindTransportFailure:  "transport_failure",
	KindUpstreamRejected:  "upstream_rejected",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Status returns the HTTP status the relay answers with for this kind
func (k Kind) Status() int {
	switch k {
	case KindOK:
		return http.StatusOK
	case KindMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case KindMalformedInput:
		return http.StatusBadRequest
	case KindValidationFailed:
		return http.StatusUnprocessableEntity
	case KindConfigUnavailable:
		return http.StatusInternalServerError
	case KindTransportFailure, KindUpstreamRejected:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// Message returns the fixed user-facing message for this kind
func (k Kind) Message() string {
	switch k {
	case KindOK:
		return MessageSent
	case KindMethodNotAllowed:
		return MessageMethodNotAllowed
	case KindMalformedInput:
		return MessageMalformedInput
	case KindValidationFailed:
		return MessageValidationFailed
	case KindConfigUnavailable:
		return MessageConfigUnavailable
	case KindTransportFailure:
		return MessageTransportFailure
	case KindUpstreamRejected:
		return MessageUpstreamRejected
	}
	return MessageConfigUnavailable
}

// KindFromStatus maps a relay status code back to a kind. 502 is ambiguous and
// resolves to KindUpstreamRejected only when details are present.
func KindFromStatus(status int, hasDetails bool) Kind {
	switch status {
	case http.StatusOK:
		return KindOK
	case http.StatusMethodNotAllowed:
		return KindMethodNotAllowed
	case http.StatusBadRequest:
		return KindMalformedInput
	case http.StatusUnprocessableEntity:
		return KindValidationFailed
	case http.StatusBadGateway:
		if hasDetails {
			return KindUpstreamRejected
		}
		return KindTransportFailure
	}
	return KindConfigUnavailable
}
