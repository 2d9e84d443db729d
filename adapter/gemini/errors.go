package gemini

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// ErrorInfoTrailer is the binary trailer key that carries a serialized google.rpc.ErrorInfo.
const ErrorInfoTrailer = "google.rpc.errorinfo-bin"

// TrailerCarrier is implemented by transport errors that expose gRPC trailer metadata.
type TrailerCarrier interface {
	Trailer() metadata.MD
}

// TransportError is a transport failure with decoded google.rpc.ErrorInfo detail.
// Unwrap returns the original transport error.
type TransportError struct {
	Code codes.Code
	Info *errdetails.ErrorInfo
	Err  error
}

// Error implements error.
func (e *TransportError) Error() string {
	var b strings.Builder
	b.WriteString("gemini: request failed")
	if e.Code != codes.OK {
		fmt.Fprintf(&b, " with %s", e.Code)
	}
	fmt.Fprintf(&b, " (reason %q, domain %q", e.Info.GetReason(), e.Info.GetDomain())
	if md := e.Info.GetMetadata(); len(md) > 0 {
		fmt.Fprintf(&b, ", metadata %v", md)
	}
	fmt.Fprintf(&b, "): %v", e.Err)
	return b.String()
}

// Unwrap returns the wrapped error for errors.Is/errors.As.
func (e *TransportError) Unwrap() error { return e.Err }

// Compile-time check that TransportError implements error.
var _ error = (*TransportError)(nil)

// DecodeTransportError looks for a structured google.rpc.ErrorInfo attached to err: in gRPC status
// details, in the ErrorInfoTrailer metadata of a TrailerCarrier, or in the details of a REST
// genai.APIError. When found it returns *TransportError wrapping err; otherwise err is returned unchanged.
func DecodeTransportError(err error) error {
	if err == nil {
		return nil
	}
	if info, code, ok := fromStatus(err); ok {
		return &TransportError{Code: code, Info: info, Err: err}
	}
	var tc TrailerCarrier
	if errors.As(err, &tc) {
		if info, ok := DecodeTrailer(tc.Trailer()); ok {
			code := codes.Unknown
			if st, ok := status.FromError(err); ok {
				code = st.Code()
			}
			return &TransportError{Code: code, Info: info, Err: err}
		}
	}
	if apiErr, ok := asAPIError(err); ok {
		if info, ok := fromDetails(apiErr.Details); ok {
			return &TransportError{Code: parseCode(apiErr.Status), Info: info, Err: err}
		}
	}
	return err
}

// DecodeTrailer decodes the ErrorInfoTrailer value from gRPC trailer metadata.
func DecodeTrailer(md metadata.MD) (*errdetails.ErrorInfo, bool) {
	vals := md.Get(ErrorInfoTrailer)
	if len(vals) == 0 {
		return nil, false
	}
	info := &errdetails.ErrorInfo{}
	if err := proto.Unmarshal([]byte(vals[0]), info); err != nil {
		return nil, false
	}
	return info, true
}

func fromStatus(err error) (*errdetails.ErrorInfo, codes.Code, bool) {
	st, ok := status.FromError(err)
	if !ok {
		return nil, codes.Unknown, false
	}
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok {
			return info, st.Code(), true
		}
	}
	return nil, st.Code(), false
}

func asAPIError(err error) (*genai.APIError, bool) {
	var v genai.APIError
	if errors.As(err, &v) {
		return &v, true
	}
	var p *genai.APIError
	if errors.As(err, &p) && p != nil {
		return p, true
	}
	return nil, false
}

// fromDetails finds an ErrorInfo among REST error details ({"@type": "...google.rpc.ErrorInfo", ...}).
func fromDetails(details []map[string]any) (*errdetails.ErrorInfo, bool) {
	for _, d := range details {
		typ, _ := d["@type"].(string)
		if !strings.HasSuffix(typ, "google.rpc.ErrorInfo") {
			continue
		}
		raw, err := json.Marshal(d)
		if err != nil {
			continue
		}
		info := &errdetails.ErrorInfo{}
		if err := (protojson.UnmarshalOptions{DiscardUnknown: true}).Unmarshal(raw, info); err != nil {
			continue
		}
		return info, true
	}
	return nil, false
}

// parseCode maps a REST status name (e.g. "INVALID_ARGUMENT") to a gRPC code.
func parseCode(name string) codes.Code {
	var c codes.Code
	if name == "" {
		return codes.Unknown
	}
	if err := c.UnmarshalJSON([]byte(`"` + name + `"`)); err != nil {
		return codes.Unknown
	}
	return c
}
