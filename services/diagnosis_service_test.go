package services

import (
    "bytes"
    "image"
    "image/color"
    "image/png"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func encodeGrayImage(t *testing.T, w, h int, value func(x, y int) uint8) []byte {
    t.Helper()
    img := image.NewGray(image.Rect(0, 0, w, h))
    for y := 0; y < h; y++ {
        for x := 0; x < w; x++ {
            img.SetGray(x, y, color.Gray{Y: value(x, y)})
        }
    }
    var buf bytes.Buffer
    require.NoError(t, png.Encode(&buf, img))
    return buf.Bytes()
}

func TestDiagnoseDarkImage(t *testing.T) {
    s := NewDiagnosisService()
    img := encodeGrayImage(t, 8, 8, func(x, y int) uint8 { return 10 })

    feedback := s.Diagnose(img, "en")

    assert.Contains(t, feedback, "too dark to analyze")
}

func TestDiagnoseUniformImageReadsMild(t *testing.T) {
    s := NewDiagnosisService()
    img := encodeGrayImage(t, 8, 8, func(x, y int) uint8 { return 200 })

    feedback := s.Diagnose(img, "en")

    assert.Contains(t, feedback, "mild infection")
}

func TestDiagnoseModerateContrast(t *testing.T) {
    s := NewDiagnosisService()
    img := encodeGrayImage(t, 8, 8, func(x, y int) uint8 {
        if (x+y)%2 == 0 {
            return 100
        }
        return 180
    })

    feedback := s.Diagnose(img, "en")

    assert.Contains(t, feedback, "⚠️ WARNING")
}

func TestDiagnoseHighContrastReadsSerious(t *testing.T) {
    s := NewDiagnosisService()
    img := encodeGrayImage(t, 8, 8, func(x, y int) uint8 {
        if (x+y)%2 == 0 {
            return 0
        }
        return 255
    })

    feedback := s.Diagnose(img, "en")

    assert.Contains(t, feedback, "⚠️ URGENT")
}

func TestDiagnoseUndecodableImage(t *testing.T) {
    s := NewDiagnosisService()

    feedback := s.Diagnose([]byte("not an image at all"), "en")

    assert.Contains(t, feedback, "I detect potential signs of infection")
}

func TestDiagnoseLocalizedFeedback(t *testing.T) {
    s := NewDiagnosisService()
    img := encodeGrayImage(t, 8, 8, func(x, y int) uint8 { return 200 })

    assert.Contains(t, s.Diagnose(img, "hi"), "ध्यान दें")
    assert.Contains(t, s.Diagnose(img, "ta"), "கவனம்")

    // unsupported language falls back to English
    assert.Contains(t, s.Diagnose(img, "fr"), "mild infection")
}

func TestClassifySeverityThresholds(t *testing.T) {
    assert.Equal(t, "dark", classifySeverity(29, 120))
    assert.Equal(t, "serious", classifySeverity(120, 51))
    assert.Equal(t, "moderate", classifySeverity(120, 50))
    assert.Equal(t, "moderate", classifySeverity(120, 31))
    assert.Equal(t, "mild", classifySeverity(120, 30))
    assert.Equal(t, "mild", classifySeverity(120, 0))
}
