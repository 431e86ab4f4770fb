// Package model defines the records stored by the service and the
// request payloads that operate on them.
package model

// DataResponse is the success envelope of every resource endpoint:
//
//	{ "data": <item or list of items> }
type DataResponse[T any] struct {
	Data T `json:"data"`
}

// NewDataResponse wraps data in the success envelope.
func NewDataResponse[T any](data T) DataResponse[T] {
	return DataResponse[T]{Data: data}
}
