package adaptor

import (
	"fmt"
	"strconv"
	"strings"

	"movie-catalog/internal/dto/response"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorAccent = lipgloss.AdaptiveColor{Light: "#399ee6", Dark: "#59c2ff"}
	colorMuted  = lipgloss.AdaptiveColor{Light: "#828c99", Dark: "#6c7680"}
	colorScore  = lipgloss.AdaptiveColor{Light: "#f2ae49", Dark: "#ffb454"}
	colorFail   = lipgloss.AdaptiveColor{Light: "#f07171", Dark: "#f07178"}
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	labelStyle = lipgloss.NewStyle().Foreground(colorMuted).Width(14)
	mutedStyle = lipgloss.NewStyle().Foreground(colorMuted)
	scoreStyle = lipgloss.NewStyle().Bold(true).Foreground(colorScore)
	failStyle  = lipgloss.NewStyle().Foreground(colorFail)
	cardStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(0, 1)
	synopsisStyle = lipgloss.NewStyle().Width(60)
)

func formatScore(score *float64) string {
	if score == nil {
		return "-"
	}
	return strconv.FormatFloat(*score, 'f', -1, 64) + "/10"
}

// RenderMovie renders the detail card of one movie.
func RenderMovie(movie response.MovieResponse) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(movie.Title))
	b.WriteString("\n\n")

	row := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), value))
		b.WriteString("\n")
	}

	row("Genre", movie.Genre)
	row("Released", movie.ReleaseDate)
	row("Score", scoreStyle.Render(formatScore(movie.Score)))
	row("IMDb", movie.IMDbURL)
	if movie.HasPhoto {
		row("Photo", movie.PhotoURL)
	} else {
		row("Photo", mutedStyle.Render("no photo ")+movie.PhotoURL)
	}

	if movie.Synopsis != "" {
		b.WriteString("\n")
		b.WriteString(synopsisStyle.Render(movie.Synopsis))
	}

	return cardStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// RenderMovieTable renders one listing page.
func RenderMovieTable(movies []response.MovieResponse, page int) string {
	header := titleStyle.Render(fmt.Sprintf("Movies, page %d", page))
	if len(movies) == 0 {
		return header + "\n" + mutedStyle.Render("No movies found")
	}

	idCol := lipgloss.NewStyle().Width(6)
	titleCol := lipgloss.NewStyle().Width(36)
	genreCol := lipgloss.NewStyle().Width(18)

	lines := []string{header}
	for _, m := range movies {
		id := "-"
		if m.ID != nil {
			id = "#" + strconv.FormatInt(*m.ID, 10)
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			idCol.Render(mutedStyle.Render(id)),
			titleCol.Render(m.Title),
			genreCol.Render(m.Genre),
			scoreStyle.Render(formatScore(m.Score)),
		))
	}
	return strings.Join(lines, "\n")
}

// RenderError renders a failure line for the terminal.
func RenderError(err error) string {
	return failStyle.Render("✗ " + err.Error())
}
