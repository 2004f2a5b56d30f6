package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/dmitrijs2005/artkeeper/internal/studio/models"
	"github.com/dmitrijs2005/artkeeper/internal/studio/state"
)

// editSettings walks through the default generation settings. Empty input
// keeps the current value; the result is validated as a whole before it is
// applied.
func (a *App) editSettings() {
	current := a.store.State().DefaultSettings
	next := current

	fmt.Printf("Current: %s %s temp=%.2f variations=%d preset=%s\n",
		current.AspectRatio, current.ImageSize, current.Temperature, current.NumberOfVariations, current.StylePreset)

	if v, _ := GetSimpleText(a.reader, fmt.Sprintf("Aspect ratio [%s]", current.AspectRatio), os.Stdout); v != "" {
		next.AspectRatio = models.AspectRatio(v)
	}
	if v, _ := GetSimpleText(a.reader, fmt.Sprintf("Image size (1K/2K/4K) [%s]", current.ImageSize), os.Stdout); v != "" {
		next.ImageSize = models.ImageSize(v)
	}
	if v, _ := GetSimpleText(a.reader, fmt.Sprintf("Temperature 0-2 [%.2f]", current.Temperature), os.Stdout); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			fmt.Println("Not a number:", v)
			return
		}
		next.Temperature = f
	}
	if v, _ := GetSimpleText(a.reader, fmt.Sprintf("Variations [%d]", current.NumberOfVariations), os.Stdout); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			fmt.Println("Not a number:", v)
			return
		}
		next.NumberOfVariations = n
	}
	if v, _ := GetSimpleText(a.reader, fmt.Sprintf("Style preset [%s]", current.StylePreset), os.Stdout); v != "" {
		next.StylePreset = models.StylePreset(v)
	}

	if err := next.Validate(); err != nil {
		fmt.Println("Invalid settings:", err)
		return
	}
	a.store.Dispatch(state.SetDefaultSettings{Settings: next})
	fmt.Println("Saved.")
}
