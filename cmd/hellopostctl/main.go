// Command hellopostctl is a CLI client for the hellopost API.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

type client struct {
	BaseURL   string
	OutFormat string // "json" | "text"
	HTTP      *http.Client
}

func (c *client) do(method, path string, body []byte) (int, []byte, error) {
	url := strings.TrimRight(c.BaseURL, "/") + path
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b, nil
}

func (c *client) print(status int, body []byte) {
	if c.OutFormat == "json" {
		var v any
		if json.Unmarshal(body, &v) == nil {
			p, _ := json.MarshalIndent(v, "", "  ")
			fmt.Println(string(p))
			return
		}
	}
	if len(body) > 0 {
		fmt.Println(string(body))
	} else {
		fmt.Printf("status=%d\n", status)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	c := &client{
		BaseURL:   envOr("HELLOPOST_URL", "http://localhost:8080"),
		OutFormat: envOr("HELLOPOST_OUT", "text"),
		HTTP:      &http.Client{Timeout: 30 * time.Second},
	}

	root := &cobra.Command{
		Use:   "hellopostctl",
		Short: "CLI client for the hellopost accounts/posts API",
	}
	root.PersistentFlags().StringVar(&c.BaseURL, "url", c.BaseURL, "API base URL (env HELLOPOST_URL)")
	root.PersistentFlags().StringVar(&c.OutFormat, "out", c.OutFormat, "output format: text|json (env HELLOPOST_OUT)")

	root.AddCommand(accountsCmd(c))
	root.AddCommand(postsCmd(c))
	root.AddCommand(menuCmd(c))

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func accountsCmd(c *client) *cobra.Command {
	cmd := &cobra.Command{Use: "accounts", Short: "Manage accounts"}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, body, err := c.do(http.MethodGet, "/v1/accounts", nil)
			if err != nil {
				return err
			}
			c.print(status, body)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Get one account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, body, err := c.do(http.MethodGet, "/v1/accounts/"+args[0], nil)
			if err != nil {
				return err
			}
			c.print(status, body)
			return nil
		},
	})

	var name, email string
	var age int
	create := &cobra.Command{
		Use:   "create",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, _ := json.Marshal(map[string]any{"name": name, "email": email, "age": age})
			status, body, err := c.do(http.MethodPost, "/v1/accounts", b)
			if err != nil {
				return err
			}
			c.print(status, body)
			return nil
		},
	}
	create.Flags().StringVar(&name, "name", "", "account name")
	create.Flags().StringVar(&email, "email", "", "account email (unique)")
	create.Flags().IntVar(&age, "age", 0, "account age")
	_ = create.MarkFlagRequired("name")
	_ = create.MarkFlagRequired("email")
	cmd.AddCommand(create)

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update account fields (propagates to the account's posts)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields := map[string]any{}
			if cmd.Flags().Changed("name") {
				fields["name"], _ = cmd.Flags().GetString("name")
			}
			if cmd.Flags().Changed("email") {
				fields["email"], _ = cmd.Flags().GetString("email")
			}
			if cmd.Flags().Changed("age") {
				fields["age"], _ = cmd.Flags().GetInt("age")
			}
			b, _ := json.Marshal(fields)
			status, body, err := c.do(http.MethodPatch, "/v1/accounts/"+args[0], b)
			if err != nil {
				return err
			}
			c.print(status, body)
			return nil
		},
	}
	update.Flags().String("name", "", "new name")
	update.Flags().String("email", "", "new email")
	update.Flags().Int("age", 0, "new age")
	cmd.AddCommand(update)

	var yes bool
	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an account and all its posts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && !confirm(fmt.Sprintf("delete account %s and all its posts?", args[0])) {
				fmt.Println("cancelled")
				return nil
			}
			status, body, err := c.do(http.MethodDelete, "/v1/accounts/"+args[0], nil)
			if err != nil {
				return err
			}
			c.print(status, body)
			return nil
		},
	}
	del.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation")
	cmd.AddCommand(del)

	cmd.AddCommand(&cobra.Command{
		Use:   "posts <id>",
		Short: "List an account's posts, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, body, err := c.do(http.MethodGet, "/v1/accounts/"+args[0]+"/posts", nil)
			if err != nil {
				return err
			}
			c.print(status, body)
			return nil
		},
	})

	return cmd
}

func postsCmd(c *client) *cobra.Command {
	cmd := &cobra.Command{Use: "posts", Short: "Manage posts"}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all posts",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, body, err := c.do(http.MethodGet, "/v1/posts", nil)
			if err != nil {
				return err
			}
			c.print(status, body)
			return nil
		},
	})

	var owner, title, content string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a post",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, _ := json.Marshal(map[string]any{"owner_id": owner, "title": title, "content": content})
			status, body, err := c.do(http.MethodPost, "/v1/posts", b)
			if err != nil {
				return err
			}
			c.print(status, body)
			return nil
		},
	}
	create.Flags().StringVar(&owner, "owner", "", "owning account id")
	create.Flags().StringVar(&title, "title", "", "post title")
	create.Flags().StringVar(&content, "content", "", "post content")
	_ = create.MarkFlagRequired("owner")
	_ = create.MarkFlagRequired("title")
	_ = create.MarkFlagRequired("content")
	cmd.AddCommand(create)

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update post fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields := map[string]any{}
			if cmd.Flags().Changed("title") {
				fields["title"], _ = cmd.Flags().GetString("title")
			}
			if cmd.Flags().Changed("content") {
				fields["content"], _ = cmd.Flags().GetString("content")
			}
			b, _ := json.Marshal(fields)
			status, body, err := c.do(http.MethodPatch, "/v1/posts/"+args[0], b)
			if err != nil {
				return err
			}
			c.print(status, body)
			return nil
		},
	}
	update.Flags().String("title", "", "new title")
	update.Flags().String("content", "", "new content")
	cmd.AddCommand(update)

	var yes bool
	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && !confirm(fmt.Sprintf("delete post %s?", args[0])) {
				fmt.Println("cancelled")
				return nil
			}
			status, body, err := c.do(http.MethodDelete, "/v1/posts/"+args[0], nil)
			if err != nil {
				return err
			}
			c.print(status, body)
			return nil
		},
	}
	del.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation")
	cmd.AddCommand(del)

	cmd.AddCommand(&cobra.Command{
		Use:   "by-owner <account-id>",
		Short: "List the posts of one account, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, body, err := c.do(http.MethodGet, "/v1/accounts/"+args[0]+"/posts", nil)
			if err != nil {
				return err
			}
			c.print(status, body)
			return nil
		},
	})

	return cmd
}
