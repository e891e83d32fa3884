package response

import "net/http"

// Bodies for statuses whose text does not come from an error.
var CodeMsgMap = map[int]string{
	http.StatusBadRequest:            "Bad Request",
	http.StatusUnauthorized:          "Unauthorized",
	http.StatusNotFound:              "Not Found",
	http.StatusRequestEntityTooLarge: "Request Entity Too Large",
	http.StatusTooManyRequests:       "Too Many Requests",
	http.StatusInternalServerError:   "Internal Server Error",
	http.StatusServiceUnavailable:    "Service Unavailable",
	http.StatusGatewayTimeout:        "Gateway Timeout",
}

const MsgInvalidCredentials = "Invalid name or password"

func Msg(code int) string {
	if m, ok := CodeMsgMap[code]; ok {
		return m
	}
	return http.StatusText(code)
}
