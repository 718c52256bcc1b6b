package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ivlev/interpoli/internal/scenario"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <scenario>",
	Short: "List the scenes and tracks of a scenario",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	doc, err := scenario.Read(args[0])
	if err != nil {
		return err
	}
	scene, err := scenario.Build(doc)
	if err != nil {
		return err
	}

	var rows [][]string
	err = scene.Walk(func(path []string, s *scenario.Scene) error {
		name := strings.Join(path, "/")
		fr := s.Timeline.Framerate()
		for _, track := range s.Tracks {
			h, _ := s.Timeline.Handle(track)
			seq, ok := s.Timeline.Sequence(h)
			if !ok {
				return fmt.Errorf("scene %s: track %s not registered", name, track)
			}
			rows = append(rows, []string{
				name,
				track,
				strconv.Itoa(seq.Len()),
				fmt.Sprintf("%s %s", fr.Mode(), fr),
				s.Duration.ClockString(),
			})
		}
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"Scene", "Track", "Keyframes", "Framerate", "Duration"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
	))
	return nil
}
