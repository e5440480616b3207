package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/notebook/internal/client/api"
)

func (a *App) Add(ctx context.Context) error {
	if !a.isLoggedIn() {
		return api.ErrNotLoggedIn
	}

	title, err := getSimpleText(a.reader, "Enter title", a.out)
	if err != nil {
		return err
	}

	description, err := GetMultiline(a.reader, "Enter description", a.out)
	if err != nil {
		return err
	}

	tag, err := getSimpleText(a.reader, "Enter tag (empty for General)", a.out)
	if err != nil {
		return err
	}

	n, err := a.api.CreateNote(ctx, title, description, tag)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Note created: %s\n", n.ID)
	return nil
}

func (a *App) List(ctx context.Context) error {
	notes, err := a.api.ListNotes(ctx)
	if err != nil {
		return err
	}

	if len(notes) == 0 {
		fmt.Fprintln(a.out, "No notes yet")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tTAG\tUPDATED")
	for _, n := range notes {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", n.ID, n.Title, n.Tag, n.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}

// Edit updates a note. Empty answers keep the current values, which are
// looked up from the note list.
func (a *App) Edit(ctx context.Context, args []string) error {
	id, err := a.noteID(args)
	if err != nil {
		return err
	}

	notes, err := a.api.ListNotes(ctx)
	if err != nil {
		return err
	}

	var cur api.Note
	for _, n := range notes {
		if n.ID == id {
			cur = n
			break
		}
	}

	title, err := getSimpleText(a.reader, withDefault("Enter title", cur.Title), a.out)
	if err != nil {
		return err
	}
	description, err := GetMultiline(a.reader, withDefault("Enter description", cur.Description), a.out)
	if err != nil {
		return err
	}
	tag, err := getSimpleText(a.reader, withDefault("Enter tag", cur.Tag), a.out)
	if err != nil {
		return err
	}

	n, err := a.api.UpdateNote(ctx, id, orDefault(title, cur.Title), orDefault(description, cur.Description), orDefault(tag, cur.Tag))
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Note updated: %s\n", n.ID)
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	id, err := a.noteID(args)
	if err != nil {
		return err
	}

	n, err := a.api.DeleteNote(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Note deleted: %s (%s)\n", n.ID, n.Title)
	return nil
}

func (a *App) noteID(args []string) (string, error) {
	if !a.isLoggedIn() {
		return "", api.ErrNotLoggedIn
	}
	if len(args) > 0 {
		return args[0], nil
	}
	return getSimpleText(a.reader, "Enter note id", a.out)
}

func withDefault(prompt, cur string) string {
	if cur == "" {
		return prompt
	}
	if i := strings.IndexByte(cur, '\n'); i >= 0 {
		cur = cur[:i] + "..."
	}
	return fmt.Sprintf("%s [%s]", prompt, cur)
}

func orDefault(v, cur string) string {
	if v == "" {
		return cur
	}
	return v
}
