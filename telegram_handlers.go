package main

import (
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func handleUpdates() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := bot.GetUpdatesChan(u)

	const workerCount = 5
	jobs := make(chan tgbotapi.Update, 100)

	for i := 0; i < workerCount; i++ {
		go worker(jobs)
	}

	for update := range updates {
		if update.Message != nil {
			jobs <- update
		}
	}
}

func worker(jobs <-chan tgbotapi.Update) {
	for update := range jobs {
		safelyHandleUpdate(update)
	}
}

// safelyHandleUpdate keeps a panic in one interaction from taking down
// the whole process.
func safelyHandleUpdate(update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic while handling update %d: %v", update.UpdateID, r)
		}
	}()
	handleUpdate(update)
}

func handleUpdate(update tgbotapi.Update) {
	message := update.Message
	if message.From == nil {
		return
	}

	if message.IsCommand() {
		handleCommand(message)
	} else {
		handleMessage(message)
	}
}

func handleCommand(message *tgbotapi.Message) {
	switch message.Command() {
	case "start":
		handleStartCommand(message)
	case "ronok":
		handleStatsCommand(message)
	case "n":
		handleBroadcastCommand(message)
	case "reset":
		handleResetCommand(message)
	case "change":
		handleChangeCommand(message)
	case "api":
		handleAPICommand(message)
	default:
		handleUnknownCommand(message)
	}
}

// handleStartCommand covers both the bare /start and the deep-link
// /start <code> redemption the verification URL points at.
func handleStartCommand(message *tgbotapi.Message) {
	if code := strings.TrimSpace(message.CommandArguments()); code != "" {
		handleRedemption(message, code)
		return
	}

	userID := message.From.ID
	counters.RecordUserSeen(userID)

	if !requireSubscription(message) {
		return
	}

	if err := statsSink.SaveUserID(userID); err != nil {
		log.Printf("Error saving user ID %d: %v", userID, err)
	}

	text := welcomeText
	if !engine.IsAuthorized(userID) {
		text = welcomeVerifyText
	}
	sendMessage(tgbotapi.NewMessage(message.Chat.ID, text))
}

func handleRedemption(message *tgbotapi.Message, code string) {
	userID, err := engine.Redeem(code)
	if err != nil {
		// Both unknown codes and redemption inside a live window get the
		// same rejection; neither changes any state.
		log.Printf("Rejected redemption of code %q: %v", code, err)
		sendMessage(tgbotapi.NewMessage(message.Chat.ID, invalidCodeText))
		return
	}

	log.Printf("User %d verified with code %s", userID, code)
	sendMessage(tgbotapi.NewMessage(message.Chat.ID, verifySuccessText))
}

func handleMessage(message *tgbotapi.Message) {
	if message.Text == "" {
		return
	}

	if !requireSubscription(message) {
		return
	}

	if !mentionsContentHost(message.Text) {
		return
	}

	userID := message.From.ID
	if !engine.IsAuthorized(userID) {
		promptVerification(message)
		return
	}

	link, ok := extractContentLink(message.Text)
	if !ok {
		sendMessage(tgbotapi.NewMessage(message.Chat.ID, noLinkText))
		return
	}

	progress, err := bot.Send(tgbotapi.NewMessage(message.Chat.ID, progressText))
	if err != nil {
		log.Printf("Error sending progress message: %v", err)
		return
	}

	directLink, err := streamer.Resolve(link)
	if err != nil {
		log.Printf("Error resolving link for user %d: %v", userID, err)
		sendMessage(tgbotapi.NewMessage(message.Chat.ID, resolveFailedText))
		return
	}

	edit := tgbotapi.NewEditMessageText(message.Chat.ID, progress.MessageID, progressDoneText)
	if _, err := bot.Request(edit); err != nil {
		log.Printf("Error editing progress message: %v", err)
	}

	msg := tgbotapi.NewMessage(message.Chat.ID, videoReadyText)
	msg.ReplyMarkup = videoKeyboard(directLink)
	sendMessage(msg)

	counters.RecordLinkProcessed()

	if _, err := bot.Request(tgbotapi.NewDeleteMessage(message.Chat.ID, progress.MessageID)); err != nil {
		log.Printf("Error deleting progress message: %v", err)
	}
}

// promptVerification issues a fresh code and sends the ad-gated
// verification link.
func promptVerification(message *tgbotapi.Message) {
	shortURL, err := engine.BeginVerification(message.From.ID)
	if err != nil {
		log.Printf("Error generating verification link for user %d: %v", message.From.ID, err)
		sendMessage(tgbotapi.NewMessage(message.Chat.ID, verifyFailedText))
		return
	}

	msg := tgbotapi.NewMessage(message.Chat.ID, tokenExpiredText)
	msg.ReplyMarkup = verifyKeyboard(shortURL)
	sendMessage(msg)
}

// requireSubscription enforces the channel-membership gate. When the
// user is not a member it sends the subscribe prompt and returns false.
func requireSubscription(message *tgbotapi.Message) bool {
	if isChannelMember(message.From.ID) {
		return true
	}

	msg := tgbotapi.NewMessage(message.Chat.ID, subscribePromptText)
	msg.ReplyMarkup = subscribeKeyboard()
	sendMessage(msg)
	return false
}

// isChannelMember treats lookup errors as "not a member"; the user can
// always retry with /start.
func isChannelMember(userID int64) bool {
	member, err := bot.GetChatMember(tgbotapi.GetChatMemberConfig{
		ChatConfigWithUser: tgbotapi.ChatConfigWithUser{
			SuperGroupUsername: channelUsername,
			UserID:             userID,
		},
	})
	if err != nil {
		log.Printf("Error checking subscription for user %d: %v", userID, err)
		return false
	}

	switch member.Status {
	case "creator", "administrator", "member":
		return true
	}
	return false
}

func handleStatsCommand(message *tgbotapi.Message) {
	snap := counters.Snapshot()
	text := fmt.Sprintf("📊 Bot Statistics:\n"+
		"    - Users: %d\n"+
		"    - Links Processed: %d\n"+
		"    - Verified Users Today: %d",
		snap.Users, snap.LinksProcessed, snap.VerifiedToday)
	sendMessage(tgbotapi.NewMessage(message.Chat.ID, text))
}

func handleBroadcastCommand(message *tgbotapi.Message) {
	notification := strings.TrimSpace(message.CommandArguments())
	if notification == "" {
		sendMessage(tgbotapi.NewMessage(message.Chat.ID, "Usage: /n <notification text>"))
		return
	}

	userIDs, err := statsSink.FetchUserIDs()
	if err != nil {
		log.Printf("Error fetching user IDs: %v", err)
		sendMessage(tgbotapi.NewMessage(message.Chat.ID, broadcastFailedText))
		return
	}

	// The directory keeps duplicates; notify each user once.
	seen := make(map[int64]struct{}, len(userIDs))
	for _, userID := range userIDs {
		if _, dup := seen[userID]; dup {
			continue
		}
		seen[userID] = struct{}{}
		sendMessage(tgbotapi.NewMessage(userID, "📢 Notification: "+notification))
	}

	sendMessage(tgbotapi.NewMessage(message.Chat.ID, broadcastDoneText))
}

func handleResetCommand(message *tgbotapi.Message) {
	engine.ResetAll()
	sendMessage(tgbotapi.NewMessage(message.Chat.ID, resetDoneText))
}

func handleChangeCommand(message *tgbotapi.Message) {
	active := shortener.Toggle()
	sendMessage(tgbotapi.NewMessage(message.Chat.ID, "✅ API has been changed to: "+active))
}

func handleAPICommand(message *tgbotapi.Message) {
	sendMessage(tgbotapi.NewMessage(message.Chat.ID, "📡 Current API: "+shortener.Active()))
}

func handleUnknownCommand(message *tgbotapi.Message) {
	sendMessage(tgbotapi.NewMessage(message.Chat.ID, "Sorry, I don't recognize that command. Send /start to begin."))
}

func sendMessage(msg tgbotapi.Chattable) {
	if _, err := bot.Send(msg); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}
