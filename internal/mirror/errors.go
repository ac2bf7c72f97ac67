package mirror

import "errors"

// Kind is a closed set of error tags returned structurally by the mirror.
// Callers classify failures by Kind; error message text is for display only.
type Kind string

const (
	KindEntitlementRequired Kind = "entitlement_required"
	KindPermissionDenied    Kind = "permission_denied"
	KindNetworkUnavailable  Kind = "network_unavailable"
	KindUnknown             Kind = "unknown"
)

// Error is a classified mirror failure.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

// KindOf extracts the Kind from an error chain, defaulting to KindUnknown.
func KindOf(err error) Kind {
	var me *Error
	if errors.As(err, &me) {
		return me.Kind
	}
	return KindUnknown
}

func kindFromTag(tag string) Kind {
	switch Kind(tag) {
	case KindEntitlementRequired, KindPermissionDenied, KindNetworkUnavailable:
		return Kind(tag)
	default:
		return KindUnknown
	}
}
