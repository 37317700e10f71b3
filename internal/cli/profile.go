package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/folio/internal/app"
	"github.com/five82/folio/internal/imageref"
	"github.com/five82/folio/internal/model"
)

func newProfileCmd(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or edit the profile",
	}
	cmd.AddCommand(newProfileShowCmd(flags))
	cmd.AddCommand(newProfileSetCmd(flags))
	cmd.AddCommand(newProfilePictureCmd(flags))
	return cmd
}

func newProfileShowCmd(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the committed profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(flags, func(env *app.Env) error {
				p := env.Store.Snapshot().Profile
				if flags.JSON {
					return writeJSON(cmd.OutOrStdout(), profileView(p))
				}
				out := cmd.OutOrStdout()
				for _, f := range model.Fields() {
					value, _ := p.Get(f)
					if f == model.FieldProfilePicture {
						value = "(none)"
						if p.HasPicture() {
							value = imageref.MediaType(p.ProfilePicture) + ", " + fmt.Sprint(imageref.Size(p.ProfilePicture)) + " bytes"
						}
					}
					fmt.Fprintf(out, "%-15s %s\n", string(f)+":", value)
				}
				return nil
			})
		},
	}
}

func newProfileSetCmd(flags *Flags) *cobra.Command {
	names := make([]string, 0, len(model.Fields()))
	for _, f := range model.Fields() {
		if f != model.FieldProfilePicture {
			names = append(names, string(f))
		}
	}
	return &cobra.Command{
		Use:       "set <field> <value>",
		Short:     "Set one profile field and save",
		Long:      "Set one profile field and save. Fields: " + strings.Join(names, ", ") + ".",
		Args:      cobra.ExactArgs(2),
		ValidArgs: names,
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == string(model.FieldProfilePicture) {
				return fmt.Errorf("use `folio profile picture <file>` to set the picture")
			}
			return withEnv(flags, func(env *app.Env) error {
				env.Store.OpenSettings()
				if err := env.Store.UpdateDraftField(args[0], args[1]); err != nil {
					env.Store.CloseSettings()
					return err
				}
				p := env.Store.CommitSettings()
				if err := checkSaved(env); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), p.Summary())
				return nil
			})
		},
	}
}

func newProfilePictureCmd(flags *Flags) *cobra.Command {
	var clearPicture bool
	cmd := &cobra.Command{
		Use:   "picture [file]",
		Short: "Set or clear the profile picture",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if clearPicture == (len(args) == 1) {
				return fmt.Errorf("pass either an image file or --clear")
			}
			return withEnv(flags, func(env *app.Env) error {
				ref := ""
				if !clearPicture {
					enc := imageref.FileEncoder{MaxBytes: env.Config.MaxImageBytes}
					var err error
					ref, err = enc.Encode(cmd.Context(), args[0])
					if err != nil {
						return err
					}
				}
				env.Store.OpenSettings()
				if err := env.Store.SetDraftPicture(ref); err != nil {
					env.Store.CloseSettings()
					return err
				}
				env.Store.CommitSettings()
				if err := checkSaved(env); err != nil {
					return err
				}
				if clearPicture {
					fmt.Fprintln(cmd.OutOrStdout(), "picture cleared")
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "picture set (%s, %d bytes)\n", imageref.MediaType(ref), imageref.Size(ref))
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&clearPicture, "clear", false, "Remove the current picture")
	return cmd
}

// profileView is the JSON shape of a profile. The picture is summarised
// rather than dumped.
func profileView(p model.Profile) map[string]any {
	v := map[string]any{
		"username":       p.Username,
		"gender":         p.Gender,
		"age":            p.Age,
		"location":       p.Location,
		"about":          p.About,
		"profilePicture": nil,
	}
	if p.HasPicture() {
		v["profilePicture"] = map[string]any{
			"mediaType": imageref.MediaType(p.ProfilePicture),
			"bytes":     imageref.Size(p.ProfilePicture),
		}
	}
	return v
}
