package main

type DisplayPreset struct {
	Name   string
	Width  int
	Height int
	Driver string
}

var displayPresets = []DisplayPreset{
	{Name: `Waveshare 2.13" V4`, Width: 250, Height: 122, Driver: "epd2in13_V4"},
	{Name: `Waveshare 1.54"`, Width: 200, Height: 200, Driver: "epd1in54_V2"},
	{Name: `Waveshare 2.9"`, Width: 296, Height: 128, Driver: "epd2in9_V2"},
	{Name: `Waveshare 4.2"`, Width: 400, Height: 300, Driver: "epd4in2"},
	{Name: `Waveshare 7.5"`, Width: 800, Height: 480, Driver: "epd7in5_V2"},
}

func findPreset(name string) (DisplayPreset, bool) {
	for _, p := range displayPresets {
		if p.Name == name {
			return p, true
		}
	}
	return DisplayPreset{}, false
}

func nextPreset(name string) DisplayPreset {
	for i, p := range displayPresets {
		if p.Name == name {
			return displayPresets[(i+1)%len(displayPresets)]
		}
	}
	return displayPresets[0]
}

func validateDisplaySize(width, height int) error {
	if width < minDisplayWidth || width > maxDisplayWidth ||
		height < minDisplayHeight || height > maxDisplayHeight {
		return &RangeError{Width: width, Height: height}
	}
	return nil
}
