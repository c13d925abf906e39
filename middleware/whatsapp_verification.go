// middleware/whatsapp_verification.go
package middleware

import (
    "bytes"
    "crypto/hmac"
    "crypto/sha256"
    "encoding/hex"
    "io"
    "net/http"
    "os"

    "github.com/gin-gonic/gin"
)

// VerifyWhatsAppSignature checks the X-Hub-Signature-256 header Meta attaches
// to webhook deliveries. Verification is skipped when WHATSAPP_APP_SECRET is
// unset so the webhook can be exercised locally without Meta credentials.
func VerifyWhatsAppSignature() gin.HandlerFunc {
    return func(c *gin.Context) {
        appSecret := os.Getenv("WHATSAPP_APP_SECRET")
        if appSecret == "" {
            c.Next()
            return
        }

        signature := c.GetHeader("X-Hub-Signature-256")
        if signature == "" {
            c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing signature"})
            return
        }

        body, err := io.ReadAll(c.Request.Body)
        if err != nil {
            c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Failed to read body"})
            return
        }

        // Restore the body for subsequent handlers
        c.Request.Body = io.NopCloser(bytes.NewBuffer(body))

        expectedSig := calculateHMAC(body, appSecret)
        if !hmac.Equal([]byte(signature), []byte("sha256="+expectedSig)) {
            c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid signature"})
            return
        }

        c.Next()
    }
}

func calculateHMAC(data []byte, secret string) string {
    h := hmac.New(sha256.New, []byte(secret))
    h.Write(data)
    return hex.EncodeToString(h.Sum(nil))
}
