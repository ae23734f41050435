package swagger

// @Tag.name Meta
// @Tag.description Liveness, version and metrics probes.

// @Tag.name Logs
// @Tag.description Filtered queries over stored audit records.

// @Tag.name Report
// @Tag.description Dashboard KPIs and charts for the current day.

// @Tag.name Users
// @Tag.description Directory users of the configured organization.

// @Tag.name Stream
// @Tag.description Live push channel for new audit records.
