// Command wq is a terminal client for the WanderQuest API.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"wanderquest/pkg/client"
	"wanderquest/pkg/utils"
)

func usage() {
	fmt.Fprintf(os.Stderr, `wq CLI
Usage:
  wq [-api URL] [-session FILE] <cmd> [args]

Commands:
  register  -e <email> -p <password>
  login     -e <email> -p <password>
  logout
  profile
  list      [-sort createdAt|startDate|budget|title] [-order asc|desc]
  search    -q <text>
  upcoming
  stats
  show      -id <itinerary id>
  create    -title T -start YYYY-MM-DD -end YYYY-MM-DD -budget N -location L [-activity "day|time|name|description"]...
  update    -id <itinerary id> (same flags as create)
  delete    -id <itinerary id>
  weather   -location L
  theme     [light|dark]
`)
	os.Exit(2)
}

// activityFlags collects repeated -activity values.
type activityFlags []client.Activity

func (a *activityFlags) String() string { return fmt.Sprint(len(*a)) }

func (a *activityFlags) Set(v string) error {
	parts := strings.SplitN(v, "|", 4)
	if len(parts) < 3 {
		return errors.New(`activity must be "day|time|name[|description]"`)
	}
	day, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return fmt.Errorf("activity day: %w", err)
	}
	act := client.Activity{Day: day, Time: strings.TrimSpace(parts[1]), Name: strings.TrimSpace(parts[2])}
	if len(parts) == 4 {
		act.Description = strings.TrimSpace(parts[3])
	}
	*a = append(*a, act)
	return nil
}

func main() {
	apiURL := flag.String("api", envOr("WQ_API_URL", "http://localhost:5000/api"), "API base URL")
	sessionPath := flag.String("session", client.DefaultStorePath(), "session file")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := run(ctx, os.Stdout, *apiURL, client.FileStore{Path: *sessionPath}, flag.Args()); err != nil {
		fail(err)
	}
}

func run(ctx context.Context, out io.Writer, apiURL string, store client.Store, args []string) error {
	session, err := client.NewSession(store)
	if err != nil {
		return err
	}
	c := client.New(apiURL, session)
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "register", "login":
		fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
		email := fs.String("e", "", "email")
		password := fs.String("p", "", "password")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if *password == "" {
			*password = promptLine("Password: ")
		}
		var returnTo string
		if cmd == "register" {
			returnTo, err = session.SignUp(ctx, c, *email, *password)
		} else {
			returnTo, err = session.SignIn(ctx, c, *email, *password)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "signed in as %s\n", session.Profile().Email)
		if returnTo != "" {
			fmt.Fprintf(out, "continue with: wq %s\n", routeCommand(returnTo))
		}
		return nil

	case "logout":
		return session.SignOut()

	case "theme":
		if len(rest) == 0 {
			theme, err := session.ToggleTheme()
			if err != nil {
				return err
			}
			fmt.Fprintln(out, theme)
			return nil
		}
		return session.SetTheme(rest[0])
	}

	if _, err := session.Restore(ctx, c); err != nil {
		return err
	}

	switch cmd {
	case "profile":
		if !session.Authenticated() {
			return errors.New("not signed in")
		}
		return printJSON(out, session.Profile())

	case "list", "stats", "upcoming", "search":
		if !allow(session, "itineraries") {
			return errLoginRequired
		}
		return listCommand(ctx, out, c, cmd, rest)

	case "show", "delete":
		fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
		id := fs.String("id", "", "itinerary id")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if !allow(session, "itineraries/"+*id) {
			return errLoginRequired
		}
		if cmd == "delete" {
			if err := c.DeleteItinerary(ctx, *id); err != nil {
				return err
			}
			fmt.Fprintln(out, "Itinerary deleted")
			return nil
		}
		it, err := c.GetItinerary(ctx, *id)
		if err != nil {
			return err
		}
		return printJSON(out, it)

	case "create", "update":
		if !allow(session, "create") {
			return errLoginRequired
		}
		return writeCommand(ctx, out, c, cmd, rest)

	case "weather":
		fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
		location := fs.String("location", "", "city")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		raw, err := c.Weather(ctx, *location)
		if err != nil {
			return err
		}
		return printJSON(out, raw)
	}

	return fmt.Errorf("unknown command %q", cmd)
}

var errLoginRequired = errors.New("login required: run `wq login`, you will be sent back afterwards")

func allow(session *client.Session, route string) bool {
	ok, err := session.Allow(route)
	return ok && err == nil
}

func listCommand(ctx context.Context, out io.Writer, c *client.Client, cmd string, args []string) error {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	sortKey := fs.String("sort", "", "sort key")
	order := fs.String("order", "", "asc or desc")
	q := fs.String("q", "", "search text")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		list []client.Itinerary
		err  error
	)
	switch cmd {
	case "stats":
		stats, err := c.Stats(ctx)
		if err != nil {
			return err
		}
		return printJSON(out, stats)
	case "upcoming":
		list, err = c.UpcomingItineraries(ctx)
	case "search":
		list, err = c.SearchItineraries(ctx, *q)
	default:
		list, err = c.ListItineraries(ctx, client.ListOptions{Sort: *sortKey, Order: *order})
	}
	if err != nil {
		return err
	}

	for _, it := range list {
		fmt.Fprintf(out, "%s  %-24s %s..%s  %-20s %10s\n", it.ID, it.Title, it.StartDate, it.EndDate, it.Location, it.Budget)
	}
	return nil
}

func writeCommand(ctx context.Context, out io.Writer, c *client.Client, cmd string, args []string) error {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	id := fs.String("id", "", "itinerary id (update)")
	title := fs.String("title", "", "title")
	start := fs.String("start", "", "start date")
	end := fs.String("end", "", "end date")
	budget := fs.String("budget", "", "budget")
	location := fs.String("location", "", "location")
	var activities activityFlags
	fs.Var(&activities, "activity", `"day|time|name[|description]", repeatable`)
	if err := fs.Parse(args); err != nil {
		return err
	}

	in := client.ItineraryInput{
		Title:      *title,
		StartDate:  *start,
		EndDate:    *end,
		Budget:     *budget,
		Location:   *location,
		Activities: activities,
	}

	var (
		it  *client.Itinerary
		err error
	)
	if cmd == "update" {
		it, err = c.UpdateItinerary(ctx, *id, in)
	} else {
		it, err = c.CreateItinerary(ctx, in)
	}
	if err != nil {
		return err
	}
	return printJSON(out, it)
}

// routeCommand turns a remembered route back into the command that shows it.
func routeCommand(route string) string {
	switch {
	case route == "create":
		return "create"
	case strings.HasPrefix(route, "itineraries/"):
		return "show -id " + strings.TrimPrefix(route, "itineraries/")
	default:
		return "list"
	}
}

func promptLine(prompt string) string {
	fmt.Fprint(os.Stderr, prompt)
	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	return strings.TrimSpace(line)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func fail(err error) {
	var verr *utils.ValidationError
	var apiErr *client.APIError
	switch {
	case errors.As(err, &verr):
		for _, f := range verr.Fields {
			fmt.Fprintf(os.Stderr, "%s: %s\n", f.Field, f.Message)
		}
	case errors.As(err, &apiErr):
		fmt.Fprintln(os.Stderr, apiErr.Message)
		for _, f := range apiErr.Fields {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", f.Field, f.Message)
		}
	default:
		fmt.Fprintln(os.Stderr, "error:", err)
	}
	os.Exit(1)
}
