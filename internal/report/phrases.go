package report

var todayMessages = []string{
	"✅ You’ve completed {habit}! +1 EXP 🎯",
	"🔥 You nailed {habit}! +1 EXP",
	"🏆 Achievement unlocked: {habit} +1 EXP",
	"💪 Great job finishing {habit}! +1 EXP",
	"🌱 Progress made: {habit} +1 EXP",
}

var openings = []string{
	"Hero’s Monthly Report:",
	"Your Adventure Log for this month:",
	"Guild Ledger, Monthly Summary:",
	"The Oracle reveals your progress:",
	"Record of your deeds this month:",
	"Your expedition results:",
	"Monthly EXP Tally:",
	"Brave adventurer, here are your gains:",
	"Warrior, your training for this month is logged:",
	"Chronicles of the month:",
}

var bodies = []string{
	"You have gained the following EXP:",
	"These are the fruits of your discipline:",
	"Your actions have yielded:",
	"Your quests granted you:",
	"Experience accumulated from your habits:",
	"Behold your earned experience:",
}

var totals = []string{
	"Your total experience this month amounts to {total} EXP.",
	"You have amassed a total of {total} EXP from all habits.",
	"All quests combined, your EXP reaches {total}.",
	"The guild tallies your monthly total: {total} EXP.",
	"Your combined training grants you {total} EXP.",
	"The Chronicle Keeper records a total of {total} EXP.",
	"The Oracle reveals your essence: {total} EXP earned.",
	"System report: Total accumulated EXP = {total}.",
	"Total EXP acquired this month: {total}.",
	"Your journey’s monthly sum stands at {total} EXP.",
	"By all your deeds, you have secured {total} EXP.",
	"The month concludes with {total} EXP earned.",
	"Computation complete. Total EXP: {total}.",
	"Your saga grows with this month's total of {total} EXP.",
	"Final tally: {total} EXP gained.",
	"Hero, your power this month totals {total} EXP.",
	"Record update: Total monthly EXP = {total}.",
	"Your efforts yield a combined {total} EXP.",
	"These results grant you {total} EXP in total.",
	"The grand total of your habit EXP is {total}.",
}

var closings = []string{
	"Press onward, hero.",
	"Your journey continues.",
	"May next month be even stronger.",
	"The guild is proud.",
	"Your legend grows.",
	"Stay steadfast, warrior.",
	"Another month awaits.",
	"Your path becomes clearer.",
	"Victory is built day by day.",
	"Return soon with new triumphs.",
}
