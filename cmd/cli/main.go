package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"chronomap/internal/dates"
	"chronomap/pkg/models"
)

const defaultBaseURL = "http://localhost:8080"

type tokenData struct {
	Token string `json:"token"`
}

type authResponse struct {
	Token string `json:"token"`
}

type parseResponse struct {
	Success bool                 `json:"success"`
	Events  []models.ParsedEvent `json:"events"`
	Error   string               `json:"error,omitempty"`
}

type locationListResponse struct {
	Total int                         `json:"total"`
	Items []models.HistoricalLocation `json:"items"`
}

func main() {
	global := flag.NewFlagSet("chronomap", flag.ExitOnError)
	baseURL := global.String("api", defaultBaseURL, "API base URL")
	tokenPath := global.String("token", defaultTokenPath(), "token file path")
	if err := global.Parse(os.Args[1:]); err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	args := global.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()
	cmd := args[0]
	sub := ""
	if len(args) > 1 {
		sub = args[1]
	}

	client := &http.Client{Timeout: 30 * time.Second}

	switch cmd {
	case "auth":
		handleAuth(ctx, client, *baseURL, *tokenPath, sub, args[2:])
	case "parse":
		handleParse(ctx, client, *baseURL, *tokenPath, args[1:])
	case "locations":
		handleLocations(ctx, client, *baseURL, *tokenPath, sub, args[2:])
	case "data":
		handleData(ctx, client, *baseURL, *tokenPath, sub, args[2:])
	case "watch":
		handleWatch(*baseURL, args[1:])
	default:
		printUsage()
		os.Exit(1)
	}
}

func handleAuth(ctx context.Context, client *http.Client, baseURL, tokenPath, sub string, args []string) {
	switch sub {
	case "login":
		fs := flag.NewFlagSet("auth login", flag.ExitOnError)
		email := fs.String("email", "", "owner email")
		password := fs.String("password", "", "password")
		_ = fs.Parse(args)

		if *email == "" || *password == "" {
			log.Fatal("email and password are required")
		}

		payload := map[string]string{"email": *email, "password": *password}
		var resp authResponse
		if err := doJSON(ctx, client, http.MethodPost, baseURL+"/auth/login", "", payload, &resp); err != nil {
			log.Fatalf("login failed: %v", err)
		}
		if err := saveToken(tokenPath, resp.Token); err != nil {
			log.Fatalf("save token: %v", err)
		}
		fmt.Println("✅ logged in")
	case "logout":
		if err := clearToken(tokenPath); err != nil {
			log.Fatalf("logout failed: %v", err)
		}
		fmt.Println("✅ logged out")
	default:
		log.Fatal("usage: chronomap auth <login|logout>")
	}
}

func handleParse(ctx context.Context, client *http.Client, baseURL, tokenPath string, args []string) {
	fs := flag.NewFlagSet("parse", flag.ExitOnError)
	file := fs.String("file", "", "text file to parse (defaults to stdin)")
	strategy := fs.String("strategy", "regex", "parser strategy (regex|structured)")
	asJSON := fs.Bool("json", false, "print raw JSON instead of a year-by-year summary")
	saveTo := fs.String("save", "", "accept all candidates and attach them to this location id")
	_ = fs.Parse(args)

	var (
		text []byte
		err  error
	)
	if *file != "" {
		text, err = os.ReadFile(*file)
	} else {
		text, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		log.Fatalf("read input: %v", err)
	}

	payload := map[string]string{"text": string(text), "strategy": *strategy}
	var resp parseResponse
	if err := doJSON(ctx, client, http.MethodPost, baseURL+"/api/parse", "", payload, &resp); err != nil {
		log.Fatalf("parse failed: %v", err)
	}

	log.Printf("extracted %d events", len(resp.Events))
	if *asJSON {
		printJSON(resp.Events)
	} else {
		fmt.Print(renderParsedEvents(resp.Events))
	}

	if *saveTo != "" && len(resp.Events) > 0 {
		token := mustToken(tokenPath)
		accepted := make([]models.HistoricalEvent, 0, len(resp.Events))
		for _, ev := range resp.Events {
			accepted = append(accepted, ev.ToHistorical())
		}
		save := map[string]any{"events": accepted}
		endpoint := baseURL + "/api/locations/" + url.PathEscape(*saveTo) + "/events"
		if err := doJSON(ctx, client, http.MethodPost, endpoint, token, save, nil); err != nil {
			log.Fatalf("save failed: %v", err)
		}
		log.Printf("✅ saved %d events to %s", len(accepted), *saveTo)
	}
}

func handleLocations(ctx context.Context, client *http.Client, baseURL, tokenPath, sub string, args []string) {
	switch sub {
	case "list":
		fs := flag.NewFlagSet("locations list", flag.ExitOnError)
		asJSON := fs.Bool("json", false, "print raw JSON")
		_ = fs.Parse(args)

		var resp locationListResponse
		if err := doJSON(ctx, client, http.MethodGet, baseURL+"/api/locations", "", nil, &resp); err != nil {
			log.Fatalf("list failed: %v", err)
		}
		if *asJSON {
			printJSON(resp)
			return
		}
		fmt.Printf("%d locations\n", resp.Total)
		for _, loc := range resp.Items {
			fmt.Println(locationSummary(loc))
		}
	case "show":
		fs := flag.NewFlagSet("locations show", flag.ExitOnError)
		id := fs.String("id", "", "location id")
		asJSON := fs.Bool("json", false, "print raw JSON")
		_ = fs.Parse(args)
		if *id == "" {
			log.Fatal("location id is required")
		}

		var resp models.HistoricalLocation
		if err := doJSON(ctx, client, http.MethodGet, baseURL+"/api/locations/"+url.PathEscape(*id), "", nil, &resp); err != nil {
			log.Fatalf("show failed: %v", err)
		}
		if *asJSON {
			printJSON(resp)
			return
		}
		fmt.Print(renderLocation(resp))
	case "create":
		fs := flag.NewFlagSet("locations create", flag.ExitOnError)
		name := fs.String("name", "", "location name")
		lon := fs.Float64("lon", 0, "longitude")
		lat := fs.Float64("lat", 0, "latitude")
		_ = fs.Parse(args)
		if *name == "" {
			log.Fatal("name is required")
		}

		token := mustToken(tokenPath)
		payload := map[string]any{
			"name":        *name,
			"coordinates": [2]float64{*lon, *lat},
		}
		var resp models.HistoricalLocation
		if err := doJSON(ctx, client, http.MethodPost, baseURL+"/api/locations", token, payload, &resp); err != nil {
			log.Fatalf("create failed: %v", err)
		}
		printJSON(resp)
	case "delete":
		fs := flag.NewFlagSet("locations delete", flag.ExitOnError)
		id := fs.String("id", "", "location id")
		_ = fs.Parse(args)
		if *id == "" {
			log.Fatal("location id is required")
		}

		token := mustToken(tokenPath)
		var resp map[string]any
		if err := doJSON(ctx, client, http.MethodDelete, baseURL+"/api/locations/"+url.PathEscape(*id), token, nil, &resp); err != nil {
			log.Fatalf("delete failed: %v", err)
		}
		printJSON(resp)
	default:
		log.Fatal("usage: chronomap locations <list|show|create|delete>")
	}
}

func handleData(ctx context.Context, client *http.Client, baseURL, tokenPath, sub string, args []string) {
	switch sub {
	case "export":
		fs := flag.NewFlagSet("data export", flag.ExitOnError)
		out := fs.String("out", "data/historical-events.json", "output JSON path")
		_ = fs.Parse(args)

		raw, err := doRaw(ctx, client, http.MethodGet, baseURL+"/api/export", "", nil)
		if err != nil {
			log.Fatalf("export failed: %v", err)
		}
		if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
			log.Fatalf("write failed: %v", err)
		}
		if err := os.WriteFile(*out, raw, 0o644); err != nil {
			log.Fatalf("write failed: %v", err)
		}
		log.Printf("✅ exported to %s", *out)
	case "import":
		fs := flag.NewFlagSet("data import", flag.ExitOnError)
		in := fs.String("in", "", "input JSON path")
		_ = fs.Parse(args)
		if *in == "" {
			log.Fatal("input path is required")
		}

		raw, err := os.ReadFile(*in)
		if err != nil {
			log.Fatalf("read input: %v", err)
		}

		token := mustToken(tokenPath)
		if _, err := doRaw(ctx, client, http.MethodPost, baseURL+"/api/import", token, raw); err != nil {
			log.Fatalf("import failed: %v", err)
		}
		log.Printf("✅ imported %s", *in)
	default:
		log.Fatal("usage: chronomap data <export|import>")
	}
}

func handleWatch(baseURL string, args []string) {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	wsURL := fs.String("ws", "", "WebSocket URL (defaults to /ws on API host)")
	_ = fs.Parse(args)

	endpoint := *wsURL
	if endpoint == "" {
		var err error
		endpoint, err = websocketURL(baseURL, "/ws")
		if err != nil {
			log.Fatalf("ws url: %v", err)
		}
	}
	if err := runWebSocket(endpoint); err != nil {
		log.Fatalf("watch failed: %v", err)
	}
}

func runWebSocket(wsURL string) error {
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return err
	}
	defer conn.Close()
	log.Printf("[watch] connected to %s", wsURL)
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		fmt.Println(string(msg))
	}
}

func doJSON(ctx context.Context, client *http.Client, method, endpoint, token string, payload any, out any) error {
	var body []byte
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = b
	}
	data, err := doRaw(ctx, client, method, endpoint, token, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

func doRaw(ctx context.Context, client *http.Client, method, endpoint, token string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = strings.NewReader(string(body))
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%s %s failed: %s", method, endpoint, strings.TrimSpace(string(data)))
	}
	return data, nil
}

// renderParsedEvents prints candidates year by year with display dates,
// the way the map timeline groups them.
func renderParsedEvents(events []models.ParsedEvent) string {
	if len(events) == 0 {
		return "no events found\n"
	}

	groups := dates.GroupByYear(events, func(e models.ParsedEvent) string { return e.Date })
	years := make([]string, 0, len(groups))
	for y := range groups {
		years = append(years, y)
	}
	sort.Strings(years)

	var sb strings.Builder
	for _, y := range years {
		fmt.Fprintf(&sb, "%s\n", y)
		for _, ev := range groups[y] {
			fmt.Fprintf(&sb, "  %s  %s (confidence %.2f)\n", dates.FormatDate(ev.Date), ev.Title, ev.Confidence)
		}
	}
	return sb.String()
}

func renderLocation(loc models.HistoricalLocation) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (%s)\n", loc.Name, loc.ID)
	fmt.Fprintf(&sb, "coordinates: %.4f, %.4f\n", loc.Coordinates[0], loc.Coordinates[1])
	for _, ev := range loc.Events {
		fmt.Fprintf(&sb, "  %s  %s\n", dates.FormatDate(ev.Date), ev.Title)
	}
	return sb.String()
}

// locationSummary is a one-line listing entry with the span of event
// dates in short form.
func locationSummary(loc models.HistoricalLocation) string {
	if len(loc.Events) == 0 {
		return fmt.Sprintf("%s (%s): no events", loc.Name, loc.ID)
	}

	first, last := loc.Events[0].Date, loc.Events[0].Date
	for _, ev := range loc.Events[1:] {
		if ev.Date < first {
			first = ev.Date
		}
		if ev.Date > last {
			last = ev.Date
		}
	}

	span := dates.FormatDateShort(first)
	if last != first {
		span += " to " + dates.FormatDateShort(last)
	}
	return fmt.Sprintf("%s (%s): %d events, %s", loc.Name, loc.ID, len(loc.Events), span)
}

func printJSON(v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("json: %v", err)
	}
	fmt.Println(string(b))
}

func defaultTokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./.chronomap-token.json"
	}
	return filepath.Join(home, ".chronomap", "token.json")
}

func saveToken(path, token string) error {
	if token == "" {
		return errors.New("empty token")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(tokenData{Token: token}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func readToken(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	var td tokenData
	if err := json.Unmarshal(data, &td); err != nil {
		return "", err
	}
	return strings.TrimSpace(td.Token), nil
}

func mustToken(path string) string {
	token, err := readToken(path)
	if err != nil {
		log.Fatalf("token not found, please login: %v", err)
	}
	if token == "" {
		log.Fatal("token empty, please login")
	}
	return token
}

func clearToken(path string) error {
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}

func websocketURL(baseURL, path string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}
	scheme := "ws"
	if u.Scheme == "https" {
		scheme = "wss"
	}
	return (&url.URL{
		Scheme: scheme,
		Host:   u.Host,
		Path:   path,
	}).String(), nil
}

func printUsage() {
	fmt.Println("chronomap <command> [subcommand] [flags]")
	fmt.Println("commands:")
	fmt.Println("  auth login|logout")
	fmt.Println("  parse [-file doc.txt] [-strategy regex|structured] [-save location-id] [-json]")
	fmt.Println("  locations list|show|create|delete")
	fmt.Println("  data export|import")
	fmt.Println("  watch")
}
