package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const defaultRenderWidth = 80

var (
	blogTag   string
	blogRaw   bool
	blogWidth int
)

var blogCmd = &cobra.Command{
	Use:   "blog",
	Short: "Read numerology articles",
}

var blogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List posts, newest first",
	Args:  cobra.NoArgs,
	RunE:  runBlogList,
}

var blogShowCmd = &cobra.Command{
	Use:   "show <slug>",
	Short: "Show a post",
	Args:  cobra.ExactArgs(1),
	RunE:  runBlogShow,
}

func init() {
	blogListCmd.Flags().StringVar(&blogTag, "tag", "", "only posts with this tag")
	blogShowCmd.Flags().BoolVar(&blogRaw, "raw", false, "print the Markdown source")
	blogShowCmd.Flags().IntVarP(&blogWidth, "width", "w", 0, "wrap width (default terminal width)")

	blogCmd.AddCommand(blogListCmd)
	blogCmd.AddCommand(blogShowCmd)
	rootCmd.AddCommand(blogCmd)
}

func runBlogList(cmd *cobra.Command, _ []string) error {
	if blogService == nil {
		return errors.New("blog service not configured")
	}

	posts, err := blogService.List(cmd.Context(), blogTag)
	if err != nil {
		return fmt.Errorf("failed to list posts: %w", err)
	}

	if len(posts) == 0 {
		cmd.Println("No posts found.")
		return nil
	}

	for i := range posts {
		p := &posts[i]
		cmd.Printf("%s  %-32s %s\n", p.PublishedAt.Format("2006-01-02"), p.Slug, p.Title)
		if len(p.Tags) > 0 {
			cmd.Printf("            tags: %s\n", strings.Join(p.Tags, ", "))
		}
	}
	return nil
}

func runBlogShow(cmd *cobra.Command, args []string) error {
	if blogService == nil {
		return errors.New("blog service not configured")
	}

	if blogRaw {
		post, err := blogService.Get(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to get post: %w", err)
		}
		cmd.Printf("# %s\n\n%s\n", post.Title, post.Body)
		return nil
	}

	out, err := blogService.Render(cmd.Context(), args[0], renderWidth(blogWidth))
	if err != nil {
		return fmt.Errorf("failed to render post: %w", err)
	}
	cmd.Print(out)
	return nil
}

// renderWidth returns the requested width, else the terminal width.
func renderWidth(requested int) int {
	if requested > 0 {
		return requested
	}
	if term.IsTerminal(int(os.Stdout.Fd())) {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
			return w
		}
	}
	return defaultRenderWidth
}
