package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/goccy/go-json"

	"github.com/usermgmt/usermgmt/internal/userapi"
)

func printResult(w io.Writer, format string, result any) error {
	if format == "json" {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	switch r := result.(type) {
	case *userapi.ListResult:
		return printList(w, r)
	case *userapi.SearchResult:
		return printList(w, &r.ListResult)
	case *userapi.PageResult:
		if err := printUsers(w, r.Data); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "page %d of %d (%d total)\n", r.CurrentPage+1, r.TotalPages, r.TotalElements)
		return err
	case *userapi.UserResult:
		return printUsers(w, []userapi.User{r.Data})
	case *userapi.CountResult:
		_, err := fmt.Fprintf(w, "active users: %d\n", r.ActiveUserCount)
		return err
	case *userapi.DeleteResult:
		_, err := fmt.Fprintf(w, "deleted user %d\n", r.DeletedID)
		return err
	default:
		return fmt.Errorf("unexpected result type %T", result)
	}
}

func printList(w io.Writer, r *userapi.ListResult) error {
	if err := printUsers(w, r.Data); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d user(s)\n", len(r.Data))
	return err
}

func printUsers(w io.Writer, users []userapi.User) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUSERNAME\tEMAIL\tFULL NAME\tACTIVE\tCREATED")
	for _, u := range users {
		created := "-"
		if u.CreatedAt != nil {
			created = u.CreatedAt.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%t\t%s\n", u.ID, u.Username, u.Email, u.FullName, u.Active(), created)
	}
	return tw.Flush()
}
