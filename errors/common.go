package errors

import "fmt"

func InvalidParamsErr(err error) error {
	return E(Invalid, "invalid params", err)
}

func InvalidBodyErr(err error) error {
	return E(Invalid, "invalid request body", err)
}

func ValidationFailedErr(err error) error {
	return E(Invalid, "validation failed", err)
}

func EmptyParamErr(field string) error {
	ve := ValidationErrs()
	ve.Add(field, "cannot be empty")
	return E(Invalid, "validation failed", ve.Err())
}

// NotFoundErr returns a formated error for an entity lookup miss
func NotFoundErr(entity, id string) error {
	return E(NotFound, fmt.Sprintf("%s %s not found", entity, id), nil)
}

// AlreadyFinalizedErr reports a finalization attempt against a
// payment that already left the pending state.
func AlreadyFinalizedErr(reference, status string) error {
	return E(Conflict, fmt.Sprintf("payment %s already finalized as %s", reference, status), nil)
}

func UpstreamErr(dependency string, err error) error {
	return E(Upstream, fmt.Sprintf("%s request failed", dependency), err)
}

func InternalErr(op string, err error) error {
	return E(Internal, op, err)
}
