// Package mongo connects to MongoDB for the audit event storage.
//
// Configuration comes from the environment (see Config) and is usually loaded
// with pkg/config:
//
//	cfg, err := config.Load[mongo.Config]()
//	if err != nil {
//		return err
//	}
//	db, err := mongo.NewWithDatabase(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	storage := audit.NewMongoStorage(db.Collection(cfg.AuditCollection))
//
// New retries the initial connect and ping RetryAttempts times, waiting
// RetryInterval between attempts, and gives up early when the context ends.
// Errors match ErrFailedToConnectToMongo with errors.Is.
//
// Healthcheck returns a ping probe for readiness endpoints.
package mongo
