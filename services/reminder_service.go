package services

import (
    "context"
    "fmt"
    "log"
    "strconv"
    "strings"
    "time"

    "health-chatbot-backend/chatbot"
    "health-chatbot-backend/config"
    "health-chatbot-backend/database"
    "health-chatbot-backend/models"
)

// ReminderService sends vaccination reminders once a day at the
// configured hour. WhatsApp is tried first, SMS is the fallback.
type ReminderService struct {
    whatsapp *WhatsAppService
    sms      *SMSService
    kb       *chatbot.KnowledgeBase

    enabled   bool
    hour      int
    daysAhead int
}

func NewReminderService(whatsapp *WhatsAppService, sms *SMSService, kb *chatbot.KnowledgeBase) *ReminderService {
    cfg := config.Get()
    return &ReminderService{
        whatsapp:  whatsapp,
        sms:       sms,
        kb:        kb,
        enabled:   cfg.Reminder.Enabled,
        hour:      cfg.Reminder.Hour,
        daysAhead: cfg.Reminder.DaysAhead,
    }
}

// Start launches the daily reminder loop. It returns immediately; the
// loop stops when ctx is cancelled.
func (s *ReminderService) Start(ctx context.Context) {
    if !s.enabled {
        log.Println("Vaccination reminders disabled")
        return
    }
    log.Printf("Vaccination reminder scheduler started, daily run at %02d:00", s.hour)
    go s.run(ctx)
}

func (s *ReminderService) run(ctx context.Context) {
    for {
        timer := time.NewTimer(time.Until(s.nextRunTime(time.Now())))
        select {
        case <-ctx.Done():
            timer.Stop()
            return
        case <-timer.C:
            s.CheckAndSendReminders(ctx)
        }
    }
}

// nextRunTime returns the next occurrence of the configured hour
func (s *ReminderService) nextRunTime(now time.Time) time.Time {
    next := time.Date(now.Year(), now.Month(), now.Day(), s.hour, 0, 0, 0, now.Location())
    if !next.After(now) {
        next = next.AddDate(0, 0, 1)
    }
    return next
}

// CheckAndSendReminders delivers every due reminder and marks it sent
func (s *ReminderService) CheckAndSendReminders(ctx context.Context) {
    due, err := database.DueVaccinationReminders(ctx)
    if err != nil {
        log.Printf("Failed to load due reminders: %v", err)
        return
    }

    for _, reminder := range due {
        if err := s.sendReminder(ctx, reminder); err != nil {
            log.Printf("Failed to send reminder for %s to %s: %v",
                reminder.VaccineName, reminder.PhoneNumber, err)
            continue
        }
        if err := database.MarkReminderSent(ctx, reminder.ID); err != nil {
            log.Printf("Failed to mark reminder %s sent: %v", reminder.ID.Hex(), err)
        }
    }
}

func (s *ReminderService) sendReminder(ctx context.Context, reminder models.VaccinationReminder) error {
    language := chatbot.DefaultLanguage
    if user, err := database.FindUserByPhone(ctx, reminder.PhoneNumber); err == nil && user.Language != "" {
        language = user.Language
    }

    message := buildReminderMessage(reminder, language, time.Now())

    if err := s.whatsapp.SendTextMessage(reminder.PhoneNumber, message); err == nil {
        log.Printf("WhatsApp reminder sent to %s", reminder.PhoneNumber)
        return nil
    }

    if _, err := s.sms.SendSMS(ctx, reminder.PhoneNumber, message); err != nil {
        return fmt.Errorf("all channels failed: %w", err)
    }
    log.Printf("SMS reminder sent to %s", reminder.PhoneNumber)
    return nil
}

// buildReminderMessage renders the reminder in the user's language.
// Reminders past their due date switch to the overdue wording.
func buildReminderMessage(reminder models.VaccinationReminder, language string, now time.Time) string {
    today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
    dueDate := reminder.DueDate.Format("02/01/2006")

    var body, footer string
    switch language {
    case "hi":
        if reminder.DueDate.Before(today) {
            body = fmt.Sprintf("⚠️ लंबित टीकाकरण\n\n%s टीकाकरण %s को देय था। कृपया अपॉइंटमेंट बुक करें।",
                reminder.VaccineName, dueDate)
        } else {
            body = fmt.Sprintf("🩹 टीकाकरण अनुस्मारक\n\nनमस्ते! यह एक अनुस्मारक है कि %s टीकाकरण का समय आ गया है।",
                reminder.VaccineName)
        }
        footer = "\n\nकृपया अपने स्वास्थ्य सेवा प्रदाता से सलाह लें।\n\nआपातकाल के लिए 108 पर कॉल करें।"
    default:
        if reminder.DueDate.Before(today) {
            body = fmt.Sprintf("⚠️ OVERDUE VACCINATION\n\nThe %s vaccination was due on %s. Please schedule an appointment.",
                reminder.VaccineName, dueDate)
        } else {
            body = fmt.Sprintf("🩹 VACCINATION REMINDER\n\nHello! This is a reminder that %s vaccination is due.",
                reminder.VaccineName)
        }
        footer = "\n\nPlease consult your healthcare provider.\n\nFor emergencies, call 108."
    }

    if reminder.Notes != "" {
        body += "\n\nNote: " + reminder.Notes
    }
    return body + footer
}

// CreateRemindersForChild schedules the full childhood vaccination
// series for a birth date
func (s *ReminderService) CreateRemindersForChild(ctx context.Context, phoneNumber string, birthDate time.Time) (int, error) {
    schedule := s.kb.Schedule("children")

    created := 0
    for _, ageKey := range schedule.Order {
        dueDate := calculateDueDate(birthDate, ageKey)
        for _, vaccine := range schedule.Vaccines[ageKey] {
            reminder := &models.VaccinationReminder{
                PhoneNumber: phoneNumber,
                VaccineName: vaccine,
                DueDate:     dueDate,
                AgeGroup:    "child",
                Notes:       "Scheduled for " + strings.ReplaceAll(ageKey, "_", " "),
            }
            if err := database.CreateVaccinationReminder(ctx, reminder); err != nil {
                return created, err
            }
            created++
        }
    }
    return created, nil
}

// UpcomingReminders returns a user's pending reminders inside the
// configured lookahead window
func (s *ReminderService) UpcomingReminders(ctx context.Context, phoneNumber string) ([]models.VaccinationReminder, error) {
    return database.UpcomingReminders(ctx, phoneNumber, s.daysAhead)
}

// calculateDueDate derives a due date from a birth date and a schedule
// label like "birth", "6_weeks", "9_months" or "4_6_years"
func calculateDueDate(birthDate time.Time, ageKey string) time.Time {
    fallback := birthDate.AddDate(0, 0, 365)

    switch {
    case ageKey == "birth":
        return birthDate
    case strings.Contains(ageKey, "weeks"):
        if weeks, err := strconv.Atoi(strings.Split(ageKey, "_")[0]); err == nil {
            return birthDate.AddDate(0, 0, weeks*7)
        }
    case strings.Contains(ageKey, "months"):
        if months, err := strconv.Atoi(strings.Split(ageKey, "_")[0]); err == nil {
            return birthDate.AddDate(0, 0, months*30)
        }
    case strings.Contains(ageKey, "years"):
        if ageKey == "4_6_years" {
            return birthDate.AddDate(0, 0, 4*365)
        }
        if years, err := strconv.Atoi(strings.Split(ageKey, "_")[0]); err == nil {
            return birthDate.AddDate(0, 0, years*365)
        }
    }
    return fallback
}
