package cli

func regCommands() {
	//Profile
	profileCmd.AddCommand(profile_registerCmd)
	profileCmd.AddCommand(profile_showCmd)
	profileCmd.AddCommand(profile_badgeCmd)
	profileCmd.AddCommand(profile_updateCmd)
	profileCmd.AddCommand(profile_logoutCmd)

	//Sync
	syncCmd.AddCommand(sync_suspendCmd)
	syncCmd.AddCommand(sync_resumeCmd)

	//Root
	rootCmd.AddCommand(daemonCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(chainCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(syncCmd)
}
