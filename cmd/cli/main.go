// Copyright 2025 Orebase Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/orebase/orebase/pkg/http"
	"github.com/orebase/orebase/pkg/version"
)

var (
	serverAddr string
	token      string
)

var rootCmd = &cobra.Command{
	Use:   "orebase-cli",
	Short: "orebase cli is a command line tool",
	Long:  "orebase cli is a command line tool",
	Run: func(cmd *cobra.Command, args []string) {
		err := cmd.Help()
		if err != nil {
			return
		}
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "check server liveness",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp := http.NewRequest(serverAddr+"/health", "GET", nil, nil).GET()
		fmt.Println(resp.String())
		return nil
	},
}

var canICmd = &cobra.Command{
	Use:   "can-i <orgId> <resource:action>...",
	Short: "ask whether the authenticated user holds permissions in an organization",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		permission := map[string][]string{}
		for _, pair := range args[1:] {
			parts := strings.SplitN(pair, ":", 2)
			if len(parts) != 2 {
				return fmt.Errorf("invalid permission pair %q, want resource:action", pair)
			}
			permission[parts[0]] = append(permission[parts[0]], parts[1])
		}

		raw, err := sonic.Marshal(map[string]any{
			"orgId":      args[0],
			"permission": permission,
		})
		if err != nil {
			return err
		}
		headers := map[string]string{
			"Content-Type":  "application/json",
			"Authorization": "Bearer " + token,
		}
		resp := http.NewRequest(serverAddr+"/api/v1/permission/check", "POST", headers, bytes.NewReader(raw)).POST()
		fmt.Println(resp.String())
		return nil
	},
}

var setRoleCmd = &cobra.Command{
	Use:   "set-role <userId> <role>",
	Short: "change a user's global role",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := sonic.Marshal(map[string]string{
			"userId": args[0],
			"role":   args[1],
		})
		if err != nil {
			return err
		}
		headers := map[string]string{
			"Content-Type":  "application/json",
			"Authorization": "Bearer " + token,
		}
		resp := http.NewRequest(serverAddr+"/api/v1/user/setRole", "POST", headers, bytes.NewReader(raw)).POST()
		fmt.Println(resp.String())
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverAddr, "server", "http://127.0.0.1:8080", "server address")
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("OREBASE_TOKEN"), "access token")
	rootCmd.AddCommand(version.VersionCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(canICmd)
	rootCmd.AddCommand(setRoleCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		panic(err)
	}
}
