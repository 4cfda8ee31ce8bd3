package cli

import (
	"fmt"

	"github.com/diillson/aws-report-lambdas/pkg/version"
	"github.com/fatih/color"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner(versionStr string) {
	banner := `
    ___        ______    ____                       _
   / \ \      / / ___|  |  _ \ ___ _ __   ___  _ __| |_ ___
  / _ \ \ /\ / /\___ \  | |_) / _ \ '_ \ / _ \| '__| __/ __|
 / ___ \ V  V /  ___) | |  _ <  __/ |_) | (_) | |  | |_\__ \
/_/   \_\_/\_/  |____/  |_| \_\___| .__/ \___/|_|   \__|___/
                                  |_|
        `
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Println(red(banner))

	formattedVersion := version.FormatVersion()
	if versionStr != "" && versionStr != version.Version {
		formattedVersion = versionStr
	}
	fmt.Println(blue(fmt.Sprintf("AWS Reports CLI (v%s)", formattedVersion)))
}
