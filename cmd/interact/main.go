// Command interact drives reply interactions against a running content store
// from the terminal: inspect a thread, rate an AI answer, accept or un-accept
// a solution, toggle visibility, or delete a reply.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"quorum/internal/analytics"
	"quorum/internal/config"
	"quorum/internal/contentapi"
	"quorum/internal/models"
	"quorum/internal/thread"
)

func main() {
	var (
		host       = flag.String("host", "", "content store base URL (defaults to CONTENT_API_HOST)")
		token      = flag.String("token", "", "bearer token for the content store")
		questionID = flag.Uint("question", 0, "question id")
		replyID    = flag.Uint("reply", 0, "reply id (required for reply actions)")
		action     = flag.String("action", "show", "show | helpful | unhelpful | resolve | undo | publish | delete")
	)
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *host == "" {
		*host = cfg.ContentAPIHost
	}
	if *token == "" {
		*token = os.Getenv("CONTENT_API_TOKEN")
	}
	if *questionID == 0 {
		log.Fatal("-question is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := slog.Default()
	client := contentapi.NewClient(*host, contentapi.StaticTokenSource(*token), nil)
	discussion, err := contentapi.OpenDiscussion(ctx, client, *questionID, logger)
	if err != nil {
		log.Fatalf("Failed to fetch thread: %v", err)
	}

	switch *action {
	case "show":
		printThread(discussion.Thread())
		return
	case "resolve":
		requireReply(*replyID)
		err = client.Resolve(ctx, *questionID, *replyID)
	case "undo":
		requireReply(*replyID)
		err = client.UndoResolve(ctx, *questionID, *replyID)
	case "publish":
		requireReply(*replyID)
		err = client.TogglePublish(ctx, *replyID)
	case "delete":
		requireReply(*replyID)
		err = client.DeleteReply(ctx, *replyID)
	case "helpful", "unhelpful":
		requireReply(*replyID)
		err = recordFeedback(ctx, cfg, client, discussion, *replyID, *action == "helpful")
	default:
		log.Fatalf("Unknown action %q", *action)
	}
	if err != nil {
		log.Fatalf("Action %s failed: %v", *action, err)
	}

	discussion.Refresh()
	printThread(discussion.Thread())
}

func requireReply(id uint) {
	if id == 0 {
		log.Fatal("-reply is required for this action")
	}
}

// recordFeedback runs the full feedback workflow: capture, persist, attempt
// resolution, refresh.
func recordFeedback(ctx context.Context, cfg *config.Config, client *contentapi.Client, discussion *contentapi.RemoteDiscussion, replyID uint, helpful bool) error {
	var target *models.Reply
	for _, r := range discussion.Thread().Replies {
		if r.Reply != nil && r.Reply.ID == replyID {
			target = r.Reply
			break
		}
	}
	if target == nil {
		return fmt.Errorf("reply %d not found in question thread", replyID)
	}

	fb := thread.NewFeedback(target, cfg.AIProfileID, client, analytics.NopSink{}, discussion, slog.Default())
	if fb == nil {
		return fmt.Errorf("reply %d is not an unrated AI answer", replyID)
	}
	fb.RecordHelpful(ctx, helpful)
	if fb.State().Sync == thread.SyncFailed {
		return fmt.Errorf("verdict did not persist, state diverged until next refresh")
	}
	return nil
}

func printThread(t *contentapi.Thread) {
	status := "open"
	if t.Resolved {
		status = "resolved"
	}
	fmt.Printf("Q%d [%s] %s\n", t.Question.ID, status, t.Question.Subject)
	for _, r := range t.Replies {
		badges := ""
		if r.IsSolution {
			badges += " [solution]"
		}
		if !r.Reply.Published() {
			badges += " [unpublished]"
		}
		if r.FeedbackEligible {
			badges += " [rate me]"
		}
		fmt.Printf("  #%d %s (%s)%s\n", r.Reply.ID, r.Author.Name, r.Posted, badges)
	}
}
