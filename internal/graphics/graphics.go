package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// Run opens a resizable window and runs the main loop at fps. Each frame it calls update (input,
// physics, session), then clears the screen and calls draw. ESC quits.
func Run(title string, fps int32, update, draw func()) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(1280, 720, title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(fps)

	for !rl.WindowShouldClose() {
		update()

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		draw()
		rl.EndDrawing()
	}
}
