package cli

import (
	"encoding/json"
	"fmt"

	"github.com/averonne/chainsight/internal/api"
	"github.com/averonne/chainsight/internal/utils/logging"
	"github.com/averonne/chainsight/pkg/reputation"
	"github.com/spf13/cobra"
)

var (
	profileCmd = &cobra.Command{
		Use:   "profile",
		Short: "Identity profile commands",
	}

	profile_registerCmd = &cobra.Command{
		Use:   "register <name>",
		Short: "register a new identity profile",
		Args:  cobra.ExactArgs(1),
		Run:   runProfileRegister,
	}

	profile_showCmd = &cobra.Command{
		Use:   "show",
		Short: "show the current profile",
		Run:   runProfileShow,
	}

	profile_badgeCmd = &cobra.Command{
		Use:   "badge <id>",
		Short: "award a badge",
		Args:  cobra.ExactArgs(1),
		Run:   runProfileBadge,
	}

	profile_updateCmd = &cobra.Command{
		Use:   "update",
		Short: "update profile fields",
		Run:   runProfileUpdate,
	}

	profile_logoutCmd = &cobra.Command{
		Use:   "logout",
		Short: "clear the current profile",
		Run:   runProfileLogout,
	}
)

func init() {
	profile_badgeCmd.Flags().String("name", "", "badge display name")
	profile_badgeCmd.Flags().String("description", "", "badge description")
	profile_badgeCmd.Flags().String("category", "achievement", "badge category: skill, achievement, participation or certification")
	profile_badgeCmd.Flags().Uint64("delta", 0, "reputation delta to apply with the badge")

	profile_updateCmd.Flags().String("name", "", "display name")
	profile_updateCmd.Flags().String("bio", "", "profile bio")
	profile_updateCmd.Flags().String("email", "", "contact email")
	profile_updateCmd.Flags().Float64("stake", -1, "stake amount")
}

func runProfileRegister(cmd *cobra.Command, args []string) {
	api, err := api.NewClient()
	if err != nil {
		logging.WithError(err).Error("constructing client")
		return
	}

	p, err := api.Register(args[0])
	if err != nil {
		logging.WithError(err).Error("registering profile")
		return
	}

	printProfile(p)
}

func runProfileShow(cmd *cobra.Command, args []string) {
	api, err := api.NewClient()
	if err != nil {
		logging.WithError(err).Error("constructing client")
		return
	}

	p, err := api.Profile()
	if err != nil {
		logging.WithError(err).Error("fetching profile")
		return
	}

	printProfile(p)
}

func runProfileBadge(cmd *cobra.Command, args []string) {
	api, err := api.NewClient()
	if err != nil {
		logging.WithError(err).Error("constructing client")
		return
	}

	name, _ := cmd.Flags().GetString("name")
	desc, _ := cmd.Flags().GetString("description")
	category, _ := cmd.Flags().GetString("category")
	delta, _ := cmd.Flags().GetUint64("delta")

	b := reputation.Badge{
		ID:          args[0],
		Name:        name,
		Description: desc,
		Category:    reputation.BadgeCategory(category),
	}

	p, err := api.AwardBadge(b, delta)
	if err != nil {
		logging.WithError(err).Error("awarding badge")
		return
	}

	printProfile(p)
}

func runProfileUpdate(cmd *cobra.Command, args []string) {
	api, err := api.NewClient()
	if err != nil {
		logging.WithError(err).Error("constructing client")
		return
	}

	patch := map[string]interface{}{}

	if v, _ := cmd.Flags().GetString("name"); v != "" {
		patch["name"] = v
	}
	if v, _ := cmd.Flags().GetString("bio"); v != "" {
		patch["bio"] = v
	}
	if v, _ := cmd.Flags().GetString("email"); v != "" {
		patch["email"] = v
	}
	if v, _ := cmd.Flags().GetFloat64("stake"); v >= 0 {
		patch["stake_amount"] = v
	}

	p, err := api.UpdateProfile(patch)
	if err != nil {
		logging.WithError(err).Error("updating profile")
		return
	}

	printProfile(p)
}

func runProfileLogout(cmd *cobra.Command, args []string) {
	api, err := api.NewClient()
	if err != nil {
		logging.WithError(err).Error("constructing client")
		return
	}

	if err := api.Logout(); err != nil {
		logging.WithError(err).Error("logging out")
		return
	}
}

func printProfile(p *reputation.Profile) {
	s, _ := json.Marshal(p)

	fmt.Printf("%s", s)
}
