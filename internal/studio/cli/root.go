package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	s := ""
	if p, ok := a.store.State().ActiveProject(); ok {
		s = p.Name + " "
	}
	if a.isUnlocked() {
		s = s + "unlocked"
	} else {
		s = s + "locked"
	}
	return fmt.Sprintf("(%s)", s)
}

func (a *App) Root(ctx context.Context) {

	log.Println("Welcome to ArtKeeper studio (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	a.Unlock(ctx)

	for {
		fmt.Printf("ak %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			fmt.Println("Projects:   projects, newproject, use <id>, editproject, deleteproject")
			fmt.Println("Assets:     refs, addref <path>, delref <id>, chars, addchar <path> <label>, delchar <id>, relabel <id> <label>")
			fmt.Println("Generate:   generate, vary <image-id>, edit <image-id>, enhance")
			fmt.Println("Images:     images, show <id>, export <id> <path>, delimage <id>")
			fmt.Println("Queue:      queue, cancel <request-id>, cancelall, prune")
			fmt.Println("Other:      settings, setkey, unlock, reset, exit")

		case "projects":
			a.listProjects()
		case "newproject":
			a.newProject(ctx)
		case "use":
			a.useProject(args)
		case "editproject":
			a.editProject(ctx)
		case "deleteproject":
			a.deleteProject(ctx)

		case "refs":
			a.listReferenceImages()
		case "addref":
			a.addReferenceImage(ctx, args)
		case "delref":
			a.removeReferenceImage(ctx, args)
		case "chars":
			a.listCharacters()
		case "addchar":
			a.addCharacter(ctx, args)
		case "delchar":
			a.removeCharacter(ctx, args)
		case "relabel":
			a.relabelCharacter(args)

		case "generate":
			a.generate(ctx)
		case "vary":
			a.vary(ctx, args)
		case "edit":
			a.editImage(ctx, args)
		case "enhance":
			a.enhance(ctx)

		case "images":
			a.listImages()
		case "show":
			a.showImage(args)
		case "export":
			a.exportImage(args)
		case "delimage":
			a.deleteImage(ctx, args)

		case "queue":
			a.showQueue()
		case "cancel":
			a.cancelRequest(args)
		case "cancelall":
			a.cancelAll()
		case "prune":
			a.pruneQueue()

		case "settings":
			a.editSettings()
		case "reset":
			a.resetAll(ctx)
		case "setkey":
			a.SetKey(ctx)
		case "unlock":
			a.Unlock(ctx)

		case "exit", "quit":
			fmt.Println("Bye!")
			return

		default:
			fmt.Println("Unknown command:", cmd)
		}
	}

}
