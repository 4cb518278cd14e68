// Package banner renders the startup banner for the headless server.
package banner

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

const art = `
    _    ____ __  __    ____
   / \  / ___|  \/  |  / ___|___  _ __ ___  _ __   __ _ ___ ___
  / _ \| |   | |\/| | | |   / _ \| '_ ` + "`" + ` _ \| '_ \ / _` + "`" + ` / __/ __|
 / ___ \ |___| |  | | | |__| (_) | | | | | | |_) | (_| \__ \__ \
/_/   \_\____|_|  |_|  \____\___/|_| |_| |_| .__/ \__,_|___/___/
                                           |_|`

var (
	artStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED")).Bold(true)
	infoStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

// Render returns the banner with the listen address underneath.
func Render(version, addr string) string {
	info := fmt.Sprintf("v%s · import endpoint http://%s/api/import", version, addr)
	return artStyle.Render(art) + "\n" + infoStyle.Render(info) + "\n"
}
