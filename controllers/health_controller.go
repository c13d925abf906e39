// controllers/health_controller.go
package controllers

import (
    "io"
    "log"
    "net/http"
    "strconv"
    "time"

    "github.com/gin-gonic/gin"

    "health-chatbot-backend/database"
    "health-chatbot-backend/models"
    "health-chatbot-backend/services"
)

type HealthController struct {
    geminiService    *services.GeminiService
    diagnosisService *services.DiagnosisService
    reminderService  *services.ReminderService
}

func NewHealthController(geminiService *services.GeminiService, diagnosisService *services.DiagnosisService, reminderService *services.ReminderService) *HealthController {
    return &HealthController{
        geminiService:    geminiService,
        diagnosisService: diagnosisService,
        reminderService:  reminderService,
    }
}

// ImageDiagnosis gives a rough severity readout for an uploaded photo
func (hc *HealthController) ImageDiagnosis(c *gin.Context) {
    fileHeader, err := c.FormFile("image")
    if err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"feedback": "No image uploaded."})
        return
    }

    language := c.PostForm("language")
    if language == "" {
        language = "en"
    }

    file, err := fileHeader.Open()
    if err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"feedback": "Could not read the uploaded image."})
        return
    }
    defer file.Close()

    imageBytes, err := io.ReadAll(file)
    if err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"feedback": "Could not read the uploaded image."})
        return
    }

    c.JSON(http.StatusOK, gin.H{"feedback": hc.diagnosisService.Diagnose(imageBytes, language)})
}

// GetHospitals suggests facilities near the given coordinates. Lookup
// failures return an empty list instead of an error.
func (hc *HealthController) GetHospitals(c *gin.Context) {
    lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
    lon, lonErr := strconv.ParseFloat(c.Query("lon"), 64)
    if latErr != nil || lonErr != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lon are required"})
        return
    }

    hospitals, err := hc.geminiService.FindNearbyHospitals(c.Request.Context(), lat, lon)
    if err != nil {
        log.Printf("Hospital lookup failed: %v", err)
        c.JSON(http.StatusOK, []models.Hospital{})
        return
    }

    c.JSON(http.StatusOK, hospitals)
}

// Assist answers a free-form question with the generative model
func (hc *HealthController) Assist(c *gin.Context) {
    var req struct {
        Question string `json:"question"`
        Language string `json:"language"`
    }

    if err := c.ShouldBindJSON(&req); err != nil || req.Question == "" {
        c.JSON(http.StatusBadRequest, gin.H{"error": "Question is required"})
        return
    }
    if req.Language == "" {
        req.Language = "en"
    }

    if !hc.geminiService.Enabled() {
        c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI assist is not configured"})
        return
    }

    answer, err := hc.geminiService.GenerateHealthAnswer(c.Request.Context(), req.Question, req.Language)
    if err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate answer"})
        return
    }

    c.JSON(http.StatusOK, gin.H{
        "answer":   answer,
        "language": req.Language,
    })
}

// LogHealthEvent records a personal health diary entry
func (hc *HealthController) LogHealthEvent(c *gin.Context) {
    var req struct {
        UserID string `json:"user_id"`
        Event  string `json:"event"`
        Date   string `json:"date"`
    }

    if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" || req.Event == "" || req.Date == "" {
        c.JSON(http.StatusBadRequest, gin.H{"error": "Missing fields"})
        return
    }

    if _, err := database.InsertHealthLog(c.Request.Context(), req.UserID, req.Event, req.Date); err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log health event"})
        return
    }

    c.JSON(http.StatusOK, gin.H{"message": "Health event logged"})
}

// GetHealthLog lists a user's diary entries, newest first
func (hc *HealthController) GetHealthLog(c *gin.Context) {
    logs, err := database.ListHealthLogs(c.Request.Context(), c.Param("user_id"))
    if err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve health log"})
        return
    }
    if logs == nil {
        logs = []models.HealthLog{}
    }

    c.JSON(http.StatusOK, logs)
}

// CreateChildReminders schedules the childhood vaccination series for
// one child from their date of birth
func (hc *HealthController) CreateChildReminders(c *gin.Context) {
    var req struct {
        PhoneNumber string `json:"phone_number"`
        BirthDate   string `json:"birth_date"`
    }

    if err := c.ShouldBindJSON(&req); err != nil || req.PhoneNumber == "" || req.BirthDate == "" {
        c.JSON(http.StatusBadRequest, gin.H{"error": "Phone number and birth date are required"})
        return
    }

    birthDate, err := time.Parse("2006-01-02", req.BirthDate)
    if err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "Birth date must be in YYYY-MM-DD format"})
        return
    }

    count, err := hc.reminderService.CreateRemindersForChild(c.Request.Context(), req.PhoneNumber, birthDate)
    if err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reminders"})
        return
    }

    c.JSON(http.StatusCreated, gin.H{
        "message":           "Vaccination reminders created",
        "reminders_created": count,
    })
}

// GetReminders lists upcoming vaccinations for a phone number
func (hc *HealthController) GetReminders(c *gin.Context) {
    reminders, err := hc.reminderService.UpcomingReminders(c.Request.Context(), c.Param("phone"))
    if err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve reminders"})
        return
    }
    if reminders == nil {
        reminders = []models.VaccinationReminder{}
    }

    c.JSON(http.StatusOK, reminders)
}

// CompleteReminder marks one vaccination as done
func (hc *HealthController) CompleteReminder(c *gin.Context) {
    if err := database.CompleteReminder(c.Request.Context(), c.Param("id")); err != nil {
        c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
        return
    }

    c.JSON(http.StatusOK, gin.H{"message": "Reminder marked as completed"})
}

// GetDoctors lists the directory of available doctors
func (hc *HealthController) GetDoctors(c *gin.Context) {
    doctors, err := database.ListDoctors(c.Request.Context())
    if err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve doctors"})
        return
    }
    if doctors == nil {
        doctors = []models.Doctor{}
    }

    c.JSON(http.StatusOK, doctors)
}
