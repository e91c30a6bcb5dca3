// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package adapters

// healthTips is the built-in health tile content. No upstream backs this
// tile; the selection policy cycles through the list so the shown tip is
// stable within a refresh window and advances each window.
var healthTips = []string{
	"Drink at least 8 glasses of water a day to stay hydrated.",
	"Take a brisk 10-minute walk after each meal to aid digestion.",
	"Aim for 7-9 hours of quality sleep per night for optimal health.",
	"Incorporate more fruits and vegetables into your daily diet.",
	"Practice mindfulness or meditation for 5 minutes to reduce stress.",
	"Stretch your body every morning to improve flexibility and energy.",
	"Choose whole grains over refined grains for better nutrition.",
	"Limit sugary drinks and snacks to maintain stable energy levels.",
}

// HealthTipCount reports how many tips are available for cycling.
func HealthTipCount() int { return len(healthTips) }

// HealthTip returns tip i. The caller supplies a canonical index from the
// selection policy, so i is always in range.
func HealthTip(i int) string { return healthTips[i] }
