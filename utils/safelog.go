// utils/safelog.go
// ============================================================================
// SAFE LOGGING - Mascara dados sensíveis em produção
// ============================================================================

package utils

import (
	"fmt"
	"log"
	"os"
	"regexp"
)

// IsProduction decides whether sensitive data gets masked in logs.
var IsProduction = os.Getenv("GIN_MODE") == "release" ||
	os.Getenv("ENVIRONMENT") == "production"

var (
	// Montantes em reais (R$ 1234.56, 1234,56 BRL)
	amountRegex = regexp.MustCompile(`\bR\$\s?\d+([.,]\d{1,2})?\b`)

	// UUIDs completos
	uuidRegex = regexp.MustCompile(`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`)
)

// MaskString masks monetary amounts and shortens UUIDs in production.
func MaskString(input string) string {
	if !IsProduction {
		return input
	}

	result := amountRegex.ReplaceAllString(input, "R$ ***")
	result = uuidRegex.ReplaceAllStringFunc(result, func(id string) string {
		return id[:8] + "..."
	})
	return result
}

// MaskID keeps only the first 8 characters of an identifier in production.
func MaskID(id string) string {
	if !IsProduction {
		return id
	}
	if len(id) <= 8 {
		return "***"
	}
	return id[:8] + "..."
}

// SafeLog logs a message with sensitive data masked.
func SafeLog(format string, args ...interface{}) {
	log.Print(MaskString(fmt.Sprintf(format, args...)))
}

// LogGroupAction logs an action inside a group without exposing full ids.
func LogGroupAction(action, groupID, userID string) {
	log.Printf("[Group] %s - Group: %s User: %s", action, MaskID(groupID), MaskID(userID))
}

// LogAuthAction logs an authentication attempt.
func LogAuthAction(action, username string, success bool) {
	status := "SUCCESS"
	if !success {
		status = "FAILED"
	}
	log.Printf("[Auth] %s - User: %s Status: %s", action, username, status)
}

// LogAdvisorAction logs an advisory pipeline step without record contents.
func LogAdvisorAction(action, groupID string, recordCount int) {
	log.Printf("[Advisor] %s - Group: %s Records: %d", action, MaskID(groupID), recordCount)
}
