package ui

import (
	"fmt"
	"path/filepath"
	"strings"
)

// View implements tea.Model
func (m *Model) View() string {
	content := &strings.Builder{}

	content.WriteString(m.styles.Title.Render("framesnatch"))
	content.WriteString("\n")

	switch m.screen {
	case screenSampling:
		content.WriteString(m.renderSampling())
	case screenInput:
		content.WriteString(m.renderInput())
	default:
		content.WriteString(m.renderBrowse())
	}

	if m.status != "" {
		style := m.styles.Status
		if m.isError {
			style = m.styles.StatusError
		}
		content.WriteString("\n")
		content.WriteString(style.Render(m.status))
	}

	content.WriteString("\n")
	content.WriteString(m.help.View(m.keys))

	return m.styles.Main.Render(content.String())
}

// renderBrowse renders the current gallery page and its position summary
func (m *Model) renderBrowse() string {
	b := &strings.Builder{}

	page := m.navigator.CurrentPage()
	if len(page) == 0 {
		b.WriteString(m.styles.Dim.Render("No snapshots here yet. Press s to sample a video, r to reload."))
		return b.String()
	}

	for i, path := range page {
		index := m.navigator.Cursor() + i + 1
		b.WriteString(m.styles.Index.Render(fmt.Sprintf("%4d", index)))
		b.WriteString(m.styles.FileName.Render(filepath.Base(path)))
		b.WriteString("\n")
	}

	r, percent := m.navigator.PositionSummary()
	b.WriteString("\n")
	b.WriteString(m.styles.Summary.Render(
		fmt.Sprintf("Showing %d–%d of %d (%d%%)", r.First, r.Last, m.navigator.Len(), percent)))

	return b.String()
}

// renderSampling renders the in-progress sampling screen
func (m *Model) renderSampling() string {
	b := &strings.Builder{}

	b.WriteString(m.styles.StatusWorking.Render("Sampling in progress"))
	b.WriteString("\n\n")

	if m.sampling.Known {
		b.WriteString(m.progress.ViewAs(m.sampling.Fraction))
	} else {
		// The container reported no usable total, so there is nothing
		// meaningful to fill a bar with.
		b.WriteString(m.styles.Dim.Render("progress unknown (no frame count in container)"))
	}

	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%d snapshots written", m.sampling.Snapshots))
	b.WriteString("\n")
	b.WriteString(m.styles.Dim.Render("esc to cancel (partial set is kept)"))

	return b.String()
}

// renderInput renders the spacing prompt
func (m *Model) renderInput() string {
	b := &strings.Builder{}

	b.WriteString("Seconds between snapshots:")
	b.WriteString("\n")
	b.WriteString(m.styles.InputBox.Render(m.spacingInput.View()))
	b.WriteString("\n")
	b.WriteString(m.styles.Dim.Render("enter to start, esc to cancel"))

	return b.String()
}
