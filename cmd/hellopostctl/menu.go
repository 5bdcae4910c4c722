package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var stdin = bufio.NewReader(os.Stdin)

func prompt(label string) string {
	fmt.Print(label)
	line, _ := stdin.ReadString('\n')
	return strings.TrimSpace(line)
}

func confirm(question string) bool {
	answer := prompt(question + " [y/N]: ")
	return strings.EqualFold(answer, "y") || strings.EqualFold(answer, "yes")
}

// menuCmd runs an interactive numbered menu against the API, for quick
// manual poking without remembering subcommands.
func menuCmd(c *client) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Interactive menu",
		RunE: func(cmd *cobra.Command, args []string) error {
			for {
				fmt.Println()
				fmt.Println("1) list accounts")
				fmt.Println("2) create account")
				fmt.Println("3) show account")
				fmt.Println("4) update account")
				fmt.Println("5) delete account (and its posts)")
				fmt.Println("6) list posts")
				fmt.Println("7) create post")
				fmt.Println("8) posts by account")
				fmt.Println("9) delete post")
				fmt.Println("0) quit")

				switch prompt("> ") {
				case "1":
					menuDo(c, http.MethodGet, "/v1/accounts", nil)
				case "2":
					name := prompt("name: ")
					email := prompt("email: ")
					age, err := strconv.Atoi(prompt("age: "))
					if err != nil {
						fmt.Println("age must be a number")
						continue
					}
					menuDo(c, http.MethodPost, "/v1/accounts",
						map[string]any{"name": name, "email": email, "age": age})
				case "3":
					id := prompt("account id: ")
					menuDo(c, http.MethodGet, "/v1/accounts/"+id, nil)
				case "4":
					id := prompt("account id: ")
					fields := map[string]any{}
					if v := prompt("new name (blank to keep): "); v != "" {
						fields["name"] = v
					}
					if v := prompt("new email (blank to keep): "); v != "" {
						fields["email"] = v
					}
					if v := prompt("new age (blank to keep): "); v != "" {
						age, err := strconv.Atoi(v)
						if err != nil {
							fmt.Println("age must be a number")
							continue
						}
						fields["age"] = age
					}
					menuDo(c, http.MethodPatch, "/v1/accounts/"+id, fields)
				case "5":
					id := prompt("account id: ")
					if !confirm("delete account " + id + " and all its posts?") {
						fmt.Println("cancelled")
						continue
					}
					menuDo(c, http.MethodDelete, "/v1/accounts/"+id, nil)
				case "6":
					menuDo(c, http.MethodGet, "/v1/posts", nil)
				case "7":
					owner := prompt("owner account id: ")
					title := prompt("title: ")
					content := prompt("content: ")
					menuDo(c, http.MethodPost, "/v1/posts",
						map[string]any{"owner_id": owner, "title": title, "content": content})
				case "8":
					id := prompt("account id: ")
					menuDo(c, http.MethodGet, "/v1/accounts/"+id+"/posts", nil)
				case "9":
					id := prompt("post id: ")
					if !confirm("delete post " + id + "?") {
						fmt.Println("cancelled")
						continue
					}
					menuDo(c, http.MethodDelete, "/v1/posts/"+id, nil)
				case "0", "q", "quit", "exit":
					return nil
				default:
					fmt.Println("unknown choice")
				}
			}
		},
	}
}

func menuDo(c *client, method, path string, payload map[string]any) {
	var body []byte
	if payload != nil {
		body, _ = json.Marshal(payload)
	}
	status, resp, err := c.do(method, path, body)
	if err != nil {
		fmt.Println("request failed:", err)
		return
	}
	c.print(status, resp)
}
