// Package redis caches resolved personal records in Redis. Only the winning
// result ID is cached; the result itself is always read from the store, so a
// stale entry can cost a lookup but never returns outdated data.
package redis
