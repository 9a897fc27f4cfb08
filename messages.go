package main

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	subscribePromptText = "❗️ Please subscribe to the channel and click /start again to use this bot."

	welcomeText = "👋 Welcome to Terabox Downloader and Streamer Bot. " +
		"Give me a Terabox link to download it or stream it."
	welcomeVerifyText = welcomeText + " To use the bot, you need to verify your access first."

	tokenExpiredText = "Hello,\n\n" +
		"It seems like your Ads token has expired. Please refresh your token and try again.\n\n" +
		"Token Timeout: 12 hours\n\n" +
		"What is a token?\n\n" +
		"This is an Ads token. After viewing 1 ad, you can utilize the bot for the next 12 hours.\n\n" +
		"Keep the interactions going smoothly 🚀"

	verifySuccessText = "✅ Verification success. You can now use the bot for the next 12 hours."
	invalidCodeText   = "❌ Invalid code. Please click /start to verify again."
	verifyFailedText  = "❌ Could not generate a verification link. Please try again later."

	noLinkText       = "🚫 No valid Terabox link found in the message."
	progressText     = "⏳ Requesting API..."
	progressDoneText = "✅ API Request successful. Preparing your video..."
	videoReadyText   = "🎬 Here is your video. If not opening and stuck on browser try other links. " +
		"You can either watch it directly or follow the guide to watch it:"
	resolveFailedText = "❌ There was an error processing your request. Please try again. " +
		"If the problem persists, contact admin @fattasuck."

	broadcastDoneText   = "✅ Notification sent to all users."
	broadcastFailedText = "❌ Error sending notifications. Please try again later."
	resetDoneText       = "✅ All users have been reset. They need to verify their access again."

	bypassGuideURL = "https://t.me/openshortnerlinks/2"
	watchGuideURL  = "https://t.me/dterabox/5"
)

func subscribeKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("📢 Subscribe to channel", channelLink),
		),
	)
}

func verifyKeyboard(verifyURL string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("✅ Click Here", verifyURL),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("❓ How to Bypass", bypassGuideURL),
		),
	)
}

func videoKeyboard(directLink string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("🎥 Click to See Video", directLink),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("❓ How to Watch", watchGuideURL),
		),
	)
}
