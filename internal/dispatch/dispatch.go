// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dispatch classifies intercepted client URLs into tile requests.
//
// The legacy client requests tiles from a handful of vendor hosts; an
// ordered rule list maps those URLs onto tile kinds and extracts the
// optional cycling index from the path. A second rule set answers the
// vendor's auxiliary endpoints with appeasement bodies so the client does
// not error out. Everything here is a thin shim in front of the
// orchestrator; no content logic lives in this package.
package dispatch

import (
	"regexp"
	"strconv"

	"github.com/openmetro/tile-engine/pkg/types"
)

// Action says how the server should answer a classified URL.
type Action int

const (
	// ActionNone means the URL matched no rule.
	ActionNone Action = iota
	// ActionTile means render the tile in Result.Request.
	ActionTile
	// ActionJSON means answer "{}" as application/json.
	ActionJSON
	// ActionJS means answer an empty comment as application/javascript.
	ActionJS
)

// Result is a classified URL.
type Result struct {
	Action  Action
	Request types.TileRequest
}

type tileRule struct {
	pattern *regexp.Regexp
	kind    types.TileKind
	// indexGroup is the capture group holding the cycling index, 0 if the
	// rule carries none.
	indexGroup int
}

// Tile rules, tried in order. The news rule accepts today.xml, home.xml,
// a bare numbered tile, and today/<n>.xml, capturing the number when present.
var tileRules = []tileRule{
	{
		pattern:    regexp.MustCompile(`(?i)en-us\.appex-rf\.msn\.com/cgtile/v1/.+/news/(?:today/)?(?:(\d+)|today|home)\.xml`),
		kind:       types.TileNews,
		indexGroup: 1,
	},
	{
		pattern: regexp.MustCompile(`(?i)en-us\.appex-rf\.msn\.com/cgtile/v1/.+/finance/.*\.(?:xml|xaml)`),
		kind:    types.TileFinance,
	},
	{
		pattern: regexp.MustCompile(`(?i)finance\.services\.appex\.bing\.com/market\.svc/apptilev2`),
		kind:    types.TileFinance,
	},
	{
		pattern: regexp.MustCompile(`(?i)en-us\.appex-rf\.msn\.com/cgtile/v1/.+/healthandfitness/.*\.(?:xml|xaml)`),
		kind:    types.TileHealth,
	},
	{
		pattern: regexp.MustCompile(`(?i)en-us\.appex-rf\.msn\.com/cgtile/v1/.+/sports/.*\.(?:xml|xaml)`),
		kind:    types.TileSports,
	},
	{
		pattern: regexp.MustCompile(`(?i)weather\.tile\.appex\.bing\.com/weatherservice\.svc/livetilev2`),
		kind:    types.TileWeather,
	},
	{
		pattern: regexp.MustCompile(`(?i)foodanddrink\.services\.appex\.bing\.com/api/feed/`),
		kind:    types.TileFood,
	},
}

// appeasePattern matches auxiliary vendor endpoints that only need a benign
// JSON body to keep the client happy.
var appeasePattern = regexp.MustCompile(`(?i)go\.microsoft\.com/fwlink` +
	`|appexnewsappupdate\.blob\.core\.windows\.net` +
	`|newsdaily\.services\.appex\.bing\.com` +
	`|az301819\.vo\.msecnd\.net`)

// jsPattern matches the in-app content URL, answered with a comment body so
// the client focuses on the tile.
var jsPattern = regexp.MustCompile(`(?i)en-us\.appex-rf\.msn\.com/cg/v5/en-us/news/`)

// Classify maps a full request URL onto an action. Unrecognized URLs return
// ActionNone; the server decides what to do with those.
func Classify(rawURL string) Result {
	for _, rule := range tileRules {
		m := rule.pattern.FindStringSubmatch(rawURL)
		if m == nil {
			continue
		}
		req := types.TileRequest{Kind: rule.kind}
		if rule.indexGroup > 0 && m[rule.indexGroup] != "" {
			if n, err := strconv.Atoi(m[rule.indexGroup]); err == nil && n >= 0 {
				req.Index = &n
			}
		}
		return Result{Action: ActionTile, Request: req}
	}

	if appeasePattern.MatchString(rawURL) {
		return Result{Action: ActionJSON}
	}
	if jsPattern.MatchString(rawURL) {
		return Result{Action: ActionJS}
	}
	return Result{Action: ActionNone}
}
