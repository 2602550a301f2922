package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/servicehub/servicehub-api/models"
	"github.com/servicehub/servicehub-api/utils"
)

// StartReminderScheduler runs the booking reminder job every morning at
// 08:00 server time. The returned scheduler should be stopped on shutdown.
func StartReminderScheduler(conn *gorm.DB, mailer *utils.Mailer) *cron.Cron {
	c := cron.New()
	_, err := c.AddFunc("0 8 * * *", func() {
		sendBookingReminders(conn, mailer)
	})
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	log.Println("Cron job scheduler started for booking reminders")
	return c
}

// sendBookingReminders emails clients whose confirmed bookings start the
// next calendar day.
func sendBookingReminders(conn *gorm.DB, mailer *utils.Mailer) {
	tomorrow := utils.TruncateToDay(time.Now().AddDate(0, 0, 1))
	dayAfter := tomorrow.AddDate(0, 0, 1)

	var bookings []models.Booking
	err := conn.Preload("User").Preload("Provider.User").
		Where("status = ? AND range_start >= ? AND range_start < ?",
			models.StatusConfirmed, tomorrow, dayAfter).
		Find(&bookings).Error
	if err != nil {
		log.Printf("Error fetching bookings for reminders: %v", err)
		return
	}

	for _, booking := range bookings {
		if err := sendReminderEmail(mailer, &booking); err != nil {
			log.Printf("Failed to send reminder for booking %d: %v", booking.ID, err)
			continue
		}
		log.Printf("Sent reminder for booking %d to %s", booking.ID, booking.User.Email)
	}
}

// sendReminderEmail constructs and sends the reminder email
func sendReminderEmail(mailer *utils.Mailer, booking *models.Booking) error {
	subject := fmt.Sprintf("Reminder: %s booking starts tomorrow", booking.Provider.Category)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder that your booking starts tomorrow.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Provider:</strong> %s</li>
			<li><strong>Category:</strong> %s</li>
			<li><strong>From:</strong> %s</li>
			<li><strong>To:</strong> %s</li>
		</ul>
		<p>If you need to cancel, please do so as soon as possible.</p>
		<p>Best regards,</p>
		<p>The ServiceHub Team</p>
	`, booking.User.Name, booking.Provider.User.Name, booking.Provider.Category,
		booking.DateRange.Start.Format(utils.DateLayout),
		booking.DateRange.End.Format(utils.DateLayout))

	return mailer.Send(booking.User.Email, subject, body)
}
