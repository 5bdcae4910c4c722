// Package logger provides a singleton Zap logger with context-based scoping.
//
// Initialize once in main:
//
//	logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})
//	defer logger.Sync()
//
// In handlers and services, prefer the context-scoped logger so request
// fields (request_id, etc.) injected by middleware travel for free:
//
//	log := logger.From(ctx).With(logger.Layer("service"), logger.Op("GetByID"))
//	log.Info("account loaded", logger.AccountID(id))
//
// "dev" builds a colored console encoder, "prod" builds JSON.
package logger
