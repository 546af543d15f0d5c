package main

import (
	"fmt"
	"image"
	"math"
)

type IconSymbol string

const (
	IconWifi        IconSymbol = "wifi"
	IconBluetooth   IconSymbol = "bluetooth"
	IconBatteryFull IconSymbol = "battery_full"
	IconBatteryHalf IconSymbol = "battery_half"
	IconBatteryLow  IconSymbol = "battery_low"
	IconHeart       IconSymbol = "heart"
	IconStar        IconSymbol = "star"
	IconCheck       IconSymbol = "check"
	IconX           IconSymbol = "x"
	IconHome        IconSymbol = "home"
	IconSettings    IconSymbol = "settings"
	IconArrowUp     IconSymbol = "arrow_up"
	IconArrowDown   IconSymbol = "arrow_down"
)

// iconSymbols is the palette order shown in the editor.
var iconSymbols = []IconSymbol{
	IconWifi, IconBluetooth,
	IconBatteryFull, IconBatteryHalf, IconBatteryLow,
	IconHeart, IconStar, IconCheck, IconX,
	IconHome, IconSettings,
	IconArrowUp, IconArrowDown,
}

func (s IconSymbol) Valid() bool {
	for _, v := range iconSymbols {
		if s == v {
			return true
		}
	}
	return false
}

func pt(x, y int) image.Point { return image.Pt(x, y) }

// iconPrimitives returns the fixed drawing sequence for sym centred on (x, y)
// with size s. Some icons draw past their hit square.
func iconPrimitives(sym IconSymbol, x, y, s int) []primitive {
	switch sym {
	case IconWifi:
		return []primitive{
			arc(x-s, y+s/2, x+s, y+s+s/2, 180, 360, 2),
			arc(x-s/2, y+s/2+s/4, x+s/2, y+s+s/4, 180, 360, 2),
			fillEllipse(x-2, y+s-2, x+2, y+s+2),
		}
	case IconBluetooth:
		return []primitive{
			strokePolygon(2, pt(x, y), pt(x+s, y+s/2), pt(x, y+s), pt(x+s, y+s+s/2), pt(x, y+s)),
			line(x, y, x, y+s, 2),
		}
	case IconBatteryFull, IconBatteryHalf, IconBatteryLow:
		level := x + s - 2
		switch sym {
		case IconBatteryHalf:
			level = x + s/2
		case IconBatteryLow:
			level = x + s/4
		}
		return []primitive{
			strokeRect(x, y+s/4, x+s, y+3*s/4, 2),
			fillRect(x+s, y+s/3, x+s+s/6, y+2*s/3),
			fillRect(x+2, y+s/4+2, level, y+3*s/4-2),
		}
	case IconHeart:
		return []primitive{
			fillPolygon(
				pt(x, y+s/3),
				pt(x-s/2, y), pt(x-s/3, y-s/4), pt(x, y),
				pt(x+s/3, y-s/4), pt(x+s/2, y),
				pt(x, y+s/3), pt(x, y+s),
			),
		}
	case IconStar:
		return []primitive{
			fillPolygon(
				pt(x, y-s/2), pt(x+s/6, y), pt(x+s/2, y), pt(x+s/4, y+s/4),
				pt(x+s/3, y+s/2), pt(x, y+s/3), pt(x-s/3, y+s/2),
				pt(x-s/4, y+s/4), pt(x-s/2, y), pt(x-s/6, y),
			),
		}
	case IconCheck:
		return []primitive{
			line(x-s/2, y, x, y+s/2, 3),
			line(x, y+s/2, x+s, y-s/2, 3),
		}
	case IconX:
		return []primitive{
			line(x-s/2, y-s/2, x+s/2, y+s/2, 3),
			line(x-s/2, y+s/2, x+s/2, y-s/2, 3),
		}
	case IconArrowUp:
		return []primitive{
			fillPolygon(pt(x, y-s/2), pt(x+s/2, y+s/2), pt(x-s/2, y+s/2)),
		}
	case IconArrowDown:
		return []primitive{
			fillPolygon(pt(x, y+s/2), pt(x+s/2, y-s/2), pt(x-s/2, y-s/2)),
		}
	case IconHome:
		return []primitive{
			strokePolygon(2, pt(x, y-s/2), pt(x+s/2, y), pt(x+s/2, y+s/2), pt(x-s/2, y+s/2), pt(x-s/2, y)),
			fillRect(x-s/6, y+s/6, x+s/6, y+s/2),
		}
	case IconSettings:
		ops := []primitive{
			strokeEllipse(x-s/3, y-s/3, x+s/3, y+s/3, 2),
			fillRect(x-s/6, y-s/6, x+s/6, y+s/6),
		}
		// Spokes use two-digit radians so they sit a pixel off the axes,
		// matching existing exported artwork.
		for _, a := range []float64{0, 1.57, 3.14, 4.71} {
			outer := float64(s / 2)
			inner := float64(s / 3)
			ops = append(ops, line(
				x+int(outer*math.Cos(a)), y+int(outer*math.Sin(a)),
				x+int(inner*math.Cos(a)), y+int(inner*math.Sin(a)),
				2,
			))
		}
		return ops
	default:
		panic(fmt.Sprintf("unknown icon %q", sym))
	}
}
