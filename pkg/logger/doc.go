// Package logger builds configured slog.Logger instances for the license
// toolkit, with optional context attribute injection.
//
// # Usage
//
//	log := logger.New(
//		logger.WithProduction("lcp"),
//		logger.WithAttr(logger.Component("license")),
//	)
//	logger.SetAsDefault(log)
//
// Dynamic attributes can be pulled from context on every record:
//
//	log := logger.New(
//		logger.WithContextValue("operation_id", operationIDKey{}),
//	)
//
// The attr helpers keep log keys consistent across packages:
//
//	log.Info("loan renewed", logger.LicenseID(doc.ID), logger.DeviceID(dev.ID()))
package logger
