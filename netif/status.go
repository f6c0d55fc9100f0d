package netif

import "fmt"

// Status is the native result code returned by every firmware call.
type Status int32

const (
	StatusOK                 Status = 0
	StatusFail               Status = -1
	StatusNoMem              Status = 0x101
	StatusInvalidArg         Status = 0x102
	StatusInvalidState       Status = 0x103
	StatusInvalidSize        Status = 0x104
	StatusNotFound           Status = 0x105
	StatusNotSupported       Status = 0x106
	StatusTimeout            Status = 0x107
	StatusNetifInvalidParams Status = 0x5001
	StatusNetifIfNotReady    Status = 0x5002
)

var statusNames = map[Status]string{
	StatusOK:                 "ESP_OK",
	StatusFail:               "ESP_FAIL",
	StatusNoMem:              "ESP_ERR_NO_MEM",
	StatusInvalidArg:         "ESP_ERR_INVALID_ARG",
	StatusInvalidState:       "ESP_ERR_INVALID_STATE",
	StatusInvalidSize:        "ESP_ERR_INVALID_SIZE",
	StatusNotFound:           "ESP_ERR_NOT_FOUND",
	StatusNotSupported:       "ESP_ERR_NOT_SUPPORTED",
	StatusTimeout:            "ESP_ERR_TIMEOUT",
	StatusNetifInvalidParams: "ESP_ERR_ESP_NETIF_INVALID_PARAMS",
	StatusNetifIfNotReady:    "ESP_ERR_ESP_NETIF_IF_NOT_READY",
}

func (s Status) String() string {
	name, found := statusNames[s]
	if !found {
		return "ESP_ERR_UNKNOWN"
	}
	return name
}

// StatusError reports a firmware call that did not return StatusOK.
// There is no recovery at this layer: whatever buffer the call was
// given must be treated as garbage.
type StatusError struct {
	Call string
	Code Status
}

func (se *StatusError) Error() string {
	return fmt.Sprintf("%s failed: %s (0x%x)", se.Call, se.Code, int32(se.Code))
}

func checkStatus(call string, status Status) error {
	if status == StatusOK {
		return nil
	}
	return &StatusError{Call: call, Code: status}
}
