// Package generate defines the AI collaborator that turns a project's notes
// into a script, a visual style summary and a cinematography plan, and that
// produces reference images from text prompts.
//
// No model client lives here. Callers plug in a [Generator]; this package
// assembles the [Request], parses the markdown reply into [Sections] and
// folds the sections back into the board collection as generated boards.
//
//	req := generate.NewRequest(project, registry)
//	text, err := gen.Script(ctx, req)
//	if err != nil {
//	    return err
//	}
//	boards := generate.Apply(project.Boards, generate.ParseSections(text))
package generate
