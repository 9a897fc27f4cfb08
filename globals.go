package main

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/twriad969/sss/access"
	"github.com/twriad969/sss/api"
	"github.com/twriad969/sss/stats"
)

var bot *tgbotapi.BotAPI
var botUsername string

var channelUsername string
var channelLink string

var engine *access.Engine
var counters *stats.Counters

var shortener *api.Shortener
var streamer *api.Streamer
var statsSink *api.StatsSink
