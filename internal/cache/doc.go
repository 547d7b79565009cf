// Package cache keeps generation state between passes: an in-memory render
// cache keyed by model content, and the on-disk manifest of written
// artifacts used to prune the ones no longer produced.
package cache
