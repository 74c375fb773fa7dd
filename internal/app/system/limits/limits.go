// internal/app/system/limits/limits.go

// Package limits holds request size limits.
package limits

// MaxJSONBody caps every JSON command body.
const MaxJSONBody = 1 << 20 // 1 MB
