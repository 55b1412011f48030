package logger

import (
	"log/slog"
	"strconv"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// LicenseID records the license identifier under the key "license_id".
func LicenseID(id string) slog.Attr {
	return slog.String("license_id", id)
}

// DeviceID records the device identifier under the key "device_id".
func DeviceID(id string) slog.Attr {
	return slog.String("device_id", id)
}

// Counter records a rights counter name under the key "counter".
func Counter(name string) slog.Attr {
	return slog.String("counter", name)
}

// Entry records a container entry path under the key "entry".
func Entry(path string) slog.Attr {
	return slog.String("entry", path)
}

// Status records a loan status under the key "status".
func Status(status string) slog.Attr {
	return slog.String("status", status)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event records the event name under the key "event".
func Event(name string) slog.Attr {
	return slog.String("event", name)
}

// Duration records a duration under the key "duration".
func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}
