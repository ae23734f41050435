// Package auditstream provides top-level metadata for the Audit Stream API.
//
// @title Audit Stream API
// @version 1.0
// @description Live tailing, querying and aggregation of API audit records.
// @BasePath /
package auditstream
