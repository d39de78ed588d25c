package notifier

import (
	"fmt"
	"log"
	"strings"

	"github.com/brightpine/camp-registry-api/internal/models"
	"github.com/bwmarrin/discordgo"
)

type Notifier interface {
	NotifyRegistration(registration models.Registration) error
}

// DiscordNotifier posts registration activity into the staff channel.
type DiscordNotifier struct {
	session   *discordgo.Session
	channelID string
}

func NewDiscordNotifier(session *discordgo.Session, channelID string) *DiscordNotifier {
	return &DiscordNotifier{
		session:   session,
		channelID: channelID,
	}
}

func (n *DiscordNotifier) NotifyRegistration(registration models.Registration) error {
	if n.session == nil {
		return fmt.Errorf("discord session is nil")
	}
	if n.channelID == "" {
		return fmt.Errorf("discord channel ID is empty")
	}

	status := "new/updated registration"
	if registration.Cancelled() {
		status = "cancelled registration 😢 👎"
	}

	childLabel := registration.ChildName
	if len(registration.Children) > 1 {
		childLabel = strings.Join(registration.Children, ", ")
	}

	var dates []string
	for _, occ := range registration.CampDates {
		if day, err := occ.Day(); err == nil {
			dates = append(dates, day.Format("2006-01-02"))
		} else {
			dates = append(dates, "invalid")
		}
	}

	message := fmt.Sprintf("🏕️ **Registration Update**\n**ID:** %s\n**Status:** %s\n**Child:** %s\n**Parent:** %s (%s)\n**Camp Dates:** %s",
		registration.RegistrationID,
		status,
		childLabel,
		registration.ParentName,
		registration.ParentEmail,
		strings.Join(dates, ", "),
	)

	_, err := n.session.ChannelMessageSend(n.channelID, message)
	if err != nil {
		log.Printf("Failed to send discord message: %v", err)
		return err
	}

	return nil
}
