package service

import (
	"time"

	"campushub/internal/dto"
	"campushub/internal/model"
)

var contactInfo = dto.ContactInfoResponse{
	Email:   "contact@campushub.com",
	Phone:   "+1 (555) 123-4567",
	Address: "123 Campus Street, University City, ST 12345",
}

var achievements = []model.Achievement{
	{
		Title:       "Best Campus Innovation Award",
		Year:        "2023",
		Description: "Recognized for innovative student engagement programs",
	},
	{
		Title:       "Research Excellence",
		Year:        "2023",
		Description: "Published 50+ research papers in international journals",
	},
	{
		Title:       "Community Impact",
		Year:        "2023",
		Description: "Successfully completed 20 community service projects",
	},
}

// InitialBlogPosts is the seed collection written on first start, before
// any post has been authored.
func InitialBlogPosts() []model.BlogPost {
	return []model.BlogPost{
		{
			ID:     "1",
			Title:  "Welcome to Campus Hub",
			Author: "Admin Team",
			Content: "We're excited to launch Campus Hub, your one-stop platform for all campus events and activities. Stay tuned for upcoming events, news, and community updates.\n\n" +
				"Make sure to check our events section regularly and follow us on social media for the latest updates.",
			Date: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:     "2",
			Title:  "New Payment System Launched",
			Author: "Finance Department",
			Content: "We've implemented a new QR-based payment system to make event registration easier and more secure. Simply scan the QR code during registration, make the payment, and upload your proof of payment.\n\n" +
				"This new system ensures faster processing and better tracking of all transactions.",
			Date: time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:     "3",
			Title:  "Getting Started with Campus Events",
			Author: "Events Team",
			Content: "Planning to attend or organize a campus event? Here's everything you need to know:\n\n" +
				"1. Browse our events section for upcoming activities\n" +
				"2. Register for events that interest you\n" +
				"3. Complete the payment using our secure QR payment system\n" +
				"4. Receive your confirmation email\n\n" +
				"For event organizers, contact the admin team to get your event featured on our platform.",
			Date: time.Date(2024, 1, 17, 0, 0, 0, 0, time.UTC),
		},
	}
}
