package transport

import "encoding/json"

// Envelope is the standard API response wrapper used for both success and error payloads.
type Envelope struct {
	Status string      `json:"status"`
	Code   string      `json:"code,omitempty"`
	Data   interface{} `json:"data,omitempty"`
	Error  interface{} `json:"error,omitempty"`
	Meta   interface{} `json:"meta,omitempty"`
}

// ListMeta describes a page of results.
type ListMeta struct {
	Count  int `json:"count"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// NewSuccess returns a success envelope.
func NewSuccess(data interface{}, meta interface{}) Envelope {
	return Envelope{
		Status: "success",
		Data:   data,
		Meta:   meta,
	}
}

// NewList returns a success envelope for a page of items.
func NewList(items interface{}, meta ListMeta) Envelope {
	return NewSuccess(items, meta)
}

// NewError returns an error envelope. err is either a message or a map of
// field errors.
func NewError(code string, err interface{}, meta interface{}) Envelope {
	return Envelope{
		Status: "error",
		Code:   code,
		Error:  err,
		Meta:   meta,
	}
}

var internalErrorBody = []byte(`{"status":"error","code":"INTERNAL","error":"internal server error"}`)

// Bytes encodes the envelope, falling back to a generic internal error body.
func (e Envelope) Bytes() []byte {
	out, err := json.Marshal(e)
	if err != nil {
		return internalErrorBody
	}
	return out
}

// InternalError is the body written when a handler cannot produce its own.
func InternalError() []byte {
	return internalErrorBody
}
