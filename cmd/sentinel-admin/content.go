package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"strings"
	"text/tabwriter"

	domainauth "github.com/sentinellock/sentinel-web/internal/domain/auth"
	"github.com/sentinellock/sentinel-web/internal/domain/model"
	"github.com/sentinellock/sentinel-web/internal/service"
	"github.com/sentinellock/sentinel-web/internal/util"
)

type deleter interface {
	Delete(ctx context.Context, id string) error
}

// runDelete handles the "<noun>-delete [--yes] <id>" commands.
func runDelete(cmdCtx *commandContext, args []string, noun string, pick func(*cliRuntime) (deleter, error)) error {
	fs := flag.NewFlagSet(noun+"-delete", flag.ContinueOnError)
	fs.SetOutput(cmdCtx.ErrOut)
	yes := fs.Bool("yes", false, "Skip confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: sentinel-admin %s-delete [--yes] <id>", noun)
	}
	id := fs.Arg(0)

	return withAdmin(cmdCtx, func(rt *cliRuntime) error {
		svc, err := pick(rt)
		if err != nil {
			return err
		}
		if err := confirm(cmdCtx, *yes, fmt.Sprintf("Delete %s %s?", noun, id)); err != nil {
			return err
		}
		if err := svc.Delete(cmdCtx.Ctx, id); err != nil {
			return err
		}
		return writef(cmdCtx.Out, "Deleted %s %s\n", noun, id)
	})
}

// decodeInput parses a JSON row payload, rejecting unknown fields so typos in
// column names fail loudly.
func decodeInput[In any](raw []byte) (In, error) {
	var in In
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		return in, fmt.Errorf("decode input: %w", err)
	}
	return in, nil
}

// runContentSave handles the "<noun>-save [-id <id>] -f <file|->" commands.
func runContentSave[T any, In service.ContentInput[In]](
	cmdCtx *commandContext,
	args []string,
	noun string,
	pick func(*cliRuntime) *service.ContentService[T, In],
) error {
	fs := flag.NewFlagSet(noun+"-save", flag.ContinueOnError)
	fs.SetOutput(cmdCtx.ErrOut)
	id := fs.String("id", "", "Update this row instead of creating one")
	file := fs.String("f", "", "JSON file with the row fields, - for stdin")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		return fmt.Errorf("usage: sentinel-admin %s-save [-id <id>] -f <file|->", noun)
	}
	raw, err := readInput(cmdCtx, *file)
	if err != nil {
		return err
	}
	in, err := decodeInput[In](raw)
	if err != nil {
		return err
	}

	return withAdmin(cmdCtx, func(rt *cliRuntime) error {
		svc := pick(rt)
		if svc == nil {
			return errContentAdminUnavailable
		}
		var row T
		if *id == "" {
			row, err = svc.Create(cmdCtx.Ctx, in)
		} else {
			row, err = svc.Update(cmdCtx.Ctx, *id, in)
		}
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(row, "", "  ")
		if err != nil {
			return fmt.Errorf("encode %s: %w", noun, err)
		}
		return writef(cmdCtx.Out, "Saved %s\n%s\n", noun, out)
	})
}

// runContentList prints every row of a content table as a table.
func runContentList[T any, In service.ContentInput[In]](
	cmdCtx *commandContext,
	pick func(*cliRuntime) *service.ContentService[T, In],
	header string,
	row func(T) string,
) error {
	return withAdmin(cmdCtx, func(rt *cliRuntime) error {
		svc := pick(rt)
		if svc == nil {
			return errContentAdminUnavailable
		}
		rows, err := svc.List(cmdCtx.Ctx)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return writeln(cmdCtx.Out, "Nothing to show")
		}
		tw := tabwriter.NewWriter(cmdCtx.Out, 0, 4, 2, ' ', 0)
		if err := writeln(tw, header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
		for _, r := range rows {
			if err := writeln(tw, row(r)); err != nil {
				return fmt.Errorf("write row: %w", err)
			}
		}
		return tw.Flush()
	})
}

func plansOf(rt *cliRuntime) *service.PlanService          { return rt.Services.Plans }
func offeringsOf(rt *cliRuntime) *service.OfferingService  { return rt.Services.Offerings }
func reviewsOf(rt *cliRuntime) *service.TestimonialService { return rt.Services.Reviews }

func flagIf(on bool, name string) string {
	if on {
		return name
	}
	return ""
}

// joinFlags joins the non-empty flag names.
func joinFlags(names ...string) string {
	var on []string
	for _, n := range names {
		if n != "" {
			on = append(on, n)
		}
	}
	return orDash(strings.Join(on, ","))
}

func runPlans(cmdCtx *commandContext, _ []string) error {
	return runContentList(cmdCtx, plansOf, "ID\tORDER\tNAME\tPRICE\tFLAGS",
		func(p model.PricingPlan) string {
			return fmt.Sprintf("%s\t%d\t%s\t%s %s\t%s", p.ID, p.DisplayOrder, p.Name, p.Price, p.Period,
				joinFlags(flagIf(p.IsActive, "active"), flagIf(p.IsPopular, "popular")))
		})
}

func runPlanSave(cmdCtx *commandContext, args []string) error {
	return runContentSave(cmdCtx, args, "plan", plansOf)
}

func runPlanDelete(cmdCtx *commandContext, args []string) error {
	return runDelete(cmdCtx, args, "plan", func(rt *cliRuntime) (deleter, error) {
		if rt.Services.Plans == nil {
			return nil, errContentAdminUnavailable
		}
		return rt.Services.Plans, nil
	})
}

func runServices(cmdCtx *commandContext, _ []string) error {
	return runContentList(cmdCtx, offeringsOf, "ID\tORDER\tNAME\tPRICE RANGE\tFLAGS",
		func(s model.ServiceOffering) string {
			return fmt.Sprintf("%s\t%d\t%s\t%s\t%s", s.ID, s.DisplayOrder, s.Name,
				orDash(util.Deref(s.PriceRange)), joinFlags(flagIf(s.IsActive, "active")))
		})
}

func runServiceSave(cmdCtx *commandContext, args []string) error {
	return runContentSave(cmdCtx, args, "service", offeringsOf)
}

func runServiceDelete(cmdCtx *commandContext, args []string) error {
	return runDelete(cmdCtx, args, "service", func(rt *cliRuntime) (deleter, error) {
		if rt.Services.Offerings == nil {
			return nil, errContentAdminUnavailable
		}
		return rt.Services.Offerings, nil
	})
}

func runTestimonials(cmdCtx *commandContext, _ []string) error {
	return runContentList(cmdCtx, reviewsOf, "ID\tORDER\tAUTHOR\tRATING\tFLAGS\tQUOTE",
		func(t model.Testimonial) string {
			return fmt.Sprintf("%s\t%d\t%s\t%d/5\t%s\t%s", t.ID, t.DisplayOrder, t.AuthorName, t.Rating,
				joinFlags(flagIf(t.IsActive, "active"), flagIf(t.IsFeatured, "featured")), util.Truncate(singleLine(t.Content), 40))
		})
}

func runTestimonialSave(cmdCtx *commandContext, args []string) error {
	return runContentSave(cmdCtx, args, "testimonial", reviewsOf)
}

func runTestimonialDelete(cmdCtx *commandContext, args []string) error {
	return runDelete(cmdCtx, args, "testimonial", func(rt *cliRuntime) (deleter, error) {
		if rt.Services.Reviews == nil {
			return nil, errContentAdminUnavailable
		}
		return rt.Services.Reviews, nil
	})
}

func runSettings(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("settings", flag.ContinueOnError)
	fs.SetOutput(cmdCtx.ErrOut)
	category := fs.String("category", "", "Only show this category")
	if err := fs.Parse(args); err != nil {
		return err
	}

	return withAdmin(cmdCtx, func(rt *cliRuntime) error {
		if rt.Services.Settings == nil {
			return errContentAdminUnavailable
		}
		rows, err := rt.Services.Settings.List(cmdCtx.Ctx)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(cmdCtx.Out, 0, 4, 2, ' ', 0)
		if err := writeln(tw, "CATEGORY\tKEY\tTYPE\tVALUE"); err != nil {
			return fmt.Errorf("write settings header: %w", err)
		}
		for _, s := range rows {
			if *category != "" && s.Category != *category {
				continue
			}
			if err := writef(tw, "%s\t%s\t%s\t%s\n", s.Category, s.Key, s.Type, orDash(s.Value)); err != nil {
				return fmt.Errorf("write setting row: %w", err)
			}
		}
		return tw.Flush()
	})
}

func parseSettingArgs(args []string) (map[string]string, error) {
	if len(args) == 0 {
		return nil, errors.New("usage: sentinel-admin setting-set <key=value>...")
	}
	out := make(map[string]string, len(args))
	for _, a := range args {
		key, value, ok := strings.Cut(a, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid setting %q: want key=value", a)
		}
		out[key] = value
	}
	return out, nil
}

func runSettingSet(cmdCtx *commandContext, args []string) error {
	updates, err := parseSettingArgs(args)
	if err != nil {
		return err
	}
	return withAdmin(cmdCtx, func(rt *cliRuntime) error {
		if rt.Services.Settings == nil {
			return errContentAdminUnavailable
		}
		if err := rt.Services.Settings.Update(cmdCtx.Ctx, updates); err != nil {
			return err
		}
		return writef(cmdCtx.Out, "Updated %d setting(s)\n", len(updates))
	})
}

func runUsers(cmdCtx *commandContext, _ []string) error {
	return withAdmin(cmdCtx, func(rt *cliRuntime) error {
		if rt.Services.Users == nil {
			return errContentAdminUnavailable
		}
		users, err := rt.Services.Users.List(cmdCtx.Ctx)
		if err != nil {
			return err
		}
		if len(users) == 0 {
			return writeln(cmdCtx.Out, "No user profiles")
		}
		now := cmdCtx.Now()
		tw := tabwriter.NewWriter(cmdCtx.Out, 0, 4, 2, ' ', 0)
		if err := writeln(tw, "USER ID\tNAME\tJOINED\tROLES"); err != nil {
			return fmt.Errorf("write users header: %w", err)
		}
		for _, u := range users {
			roles := make([]string, len(u.Roles))
			for i, r := range u.Roles {
				roles[i] = string(r)
			}
			if err := writef(tw, "%s\t%s\t%s\t%s\n", u.ID, orDash(util.Deref(u.FullName)),
				util.FormatAge(u.CreatedAt, now), orDash(strings.Join(roles, ","))); err != nil {
				return fmt.Errorf("write user row: %w", err)
			}
		}
		if err := tw.Flush(); err != nil {
			return fmt.Errorf("flush users table: %w", err)
		}
		return writef(cmdCtx.Out, "Total: %d\n", len(users))
	})
}

func runGrantRole(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("grant-role", flag.ContinueOnError)
	fs.SetOutput(cmdCtx.ErrOut)
	role := fs.String("role", string(domainauth.RoleModerator), "Role to grant: admin, moderator or user")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: sentinel-admin grant-role [--role moderator] <user-id>")
	}
	userID := fs.Arg(0)

	return withAdmin(cmdCtx, func(rt *cliRuntime) error {
		if rt.Services.RoleAdmin == nil {
			return errRoleAdminUnavailable
		}
		if err := rt.Services.RoleAdmin.Grant(cmdCtx.Ctx, userID, *role); err != nil {
			return err
		}
		return writef(cmdCtx.Out, "Granted %s to %s\n", *role, userID)
	})
}
