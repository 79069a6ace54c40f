// Package audit records security-relevant events: threat findings reported
// by the guard middleware, rejected requests and rejected uploads.
//
// A Logger builds an Event from the request context (user, request id, IP,
// user agent via extractors), applies EventOptions and hands it to a Storage.
// Storages shipped here:
//
//   - SlogStorage writes events as structured log records.
//   - MongoStorage inserts them into a MongoDB collection.
//   - AsyncStorage batches writes in front of another storage.
//
// ThreatReporter implements threat.Reporter on top of a Logger and records
// the security.sql_injection and security.xss actions, with the finding path,
// signature and a truncated copy of the offending value in the metadata.
//
//	storage := audit.NewAsyncStorage(audit.NewMongoStorage(coll), audit.AsyncOptions{})
//	defer storage.Close(context.Background())
//
//	hasher, err := audit.NewKeyedHasher(key)
//	if err != nil {
//		return err
//	}
//	log := audit.NewLogger(storage,
//		audit.WithRequestIDExtractor(requestid.Extractor()),
//		audit.WithUserIDHasher(hasher),
//	)
//	reporter := audit.NewThreatReporter(log)
//
// With a Hasher configured, user ids are replaced by a keyed BLAKE2b digest
// before they reach the storage.
package audit
