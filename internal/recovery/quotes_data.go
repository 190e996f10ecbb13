package recovery

var quotes = []Quote{
	{Text: "You don't have to see the whole staircase, just take the first step.", Author: "Martin Luther King Jr."},
	{Text: "Recovery is not about perfection. It's about making it through today."},
	{Text: "Today, I don't have to have all the answers. I just have to show up."},
	{Text: "The only day that matters is the one you're living right now."},
	{Text: "One day at a time isn't a limitation—it's freedom from the weight of forever."},
	{Text: "Be patient with yourself. Nothing in nature blooms all year."},
	{Text: "You are not your worst mistake. You are not the sum of your struggles."},
	{Text: "Self-compassion isn't weakness. It's the courage to treat yourself like someone worth saving."},
	{Text: "Healing isn't linear. Some days you'll take three steps back, and that's still part of moving forward."},
	{Text: "The voice that says you're not doing enough is the same one that kept you stuck. Don't listen."},
	{Text: "You're allowed to be both a masterpiece and a work in progress."},
	{Text: "Growth happens in the spaces between who you were and who you're becoming."},
	{Text: "Your past self made it possible for your present self to try again. That's not failure—that's resilience."},
	{Text: "Forgiving yourself doesn't mean forgetting. It means choosing to learn instead of punish."},
	{Text: "Rock bottom became the solid foundation on which I rebuilt my life.", Author: "J.K. Rowling"},
	{Text: "Strength doesn't come from what you can do. It comes from overcoming what you once thought you couldn't."},
	{Text: "You've survived 100% of your worst days. Your track record is perfect."},
	{Text: "Every moment you choose recovery, you're choosing yourself. That takes incredible strength."},
	{Text: "The fact that you're still trying is proof that you're stronger than what tried to break you."},
	{Text: "Courage isn't the absence of fear. It's showing up afraid and doing it anyway."},
	{Text: "You don't have to be fearless. You just have to be willing."},
	{Text: "Recovery is the art of becoming who you were before the world told you who to be."},
	{Text: "Progress is not about never falling down. It's about getting up one more time than you fell."},
	{Text: "Small steps in the right direction are still steps forward."},
	{Text: "You don't have to be perfect to be worthy of recovery."},
	{Text: "The goal isn't to never struggle. The goal is to struggle less than yesterday."},
	{Text: "Progress looks different for everyone. Stop comparing your chapter one to someone else's chapter twenty."},
	{Text: "Perfection is a prison. Progress is freedom."},
	{Text: "Every day sober is a victory, no matter how messy the rest of it looks."},
	{Text: "You're not starting over. You're starting from experience."},
	{Text: "Recovery doesn't erase the past, but it gives you a future worth living."},
	{Text: "It gets easier. Not perfect, not simple, but easier. And easier is enough."},
	{Text: "The person you were when you were using did what they had to do to survive. The person you are now is learning how to live."},
	{Text: "Sobriety won't fix everything, but it makes everything fixable."},
	{Text: "Change is uncomfortable, but so is staying in a place that hurts you. Choose the discomfort that leads somewhere."},
	{Text: "You can't go back and change the beginning, but you can start where you are and change the ending.", Author: "C.S. Lewis"},
	{Text: "The worst day sober is still better than the best day lost in addiction."},
	{Text: "Recovery isn't about becoming a different person. It's about remembering who you were before."},
	{Text: "The truth may hurt for a moment, but a lie hurts forever. Sobriety is choosing truth."},
	{Text: "Vulnerability is not weakness. It's the most accurate measure of courage.", Author: "Brené Brown"},
	{Text: "You're only as sick as your secrets. Honesty is the antidote."},
	{Text: "Authenticity is the daily practice of letting go of who we think we're supposed to be and embracing who we are.", Author: "Brené Brown"},
	{Text: "You don't have to do this alone. Asking for help is a sign of strength, not weakness."},
	{Text: "Connection is why we're here. It's what gives purpose and meaning to our lives.", Author: "Brené Brown"},
	{Text: "The opposite of addiction isn't sobriety. It's connection.", Author: "Johann Hari"},
	{Text: "Nobody saves themselves by themselves. You need people."},
	{Text: "Cravings are just thoughts. They can't hurt you, and they don't control you."},
	{Text: "The urge will pass whether you use or not. Choose to let it pass without giving in."},
	{Text: "Feelings aren't facts. What feels unbearable now will feel different in an hour."},
	{Text: "You've felt this way before and it passed. It will pass again."},
	{Text: "When you feel like using, remember why you stopped."},
	{Text: "The hard days are when recovery counts the most. Show up anyway."},
	{Text: "Don't let a temporary feeling make you give up permanent progress."},
	{Text: "Your value doesn't decrease based on someone's inability to see your worth."},
	{Text: "You are not defined by your addiction. You are defined by what you do next."},
	{Text: "Sobriety is not about denying yourself pleasure. It's about giving yourself the gift of presence."},
	{Text: "You deserve the love you keep trying to give to everyone else."},
	{Text: "Recovery is learning to fill the void with things that actually nourish you."},
	{Text: "We cannot change what we are not aware of, and once we are aware, we cannot help but change.", Author: "Sheryl Sandberg"},
	{Text: "The curious paradox is that when I accept myself just as I am, then I can change.", Author: "Carl Rogers"},
	{Text: "Between stimulus and response there is a space. In that space is our power to choose our response.", Author: "Viktor Frankl"},
	{Text: "What we achieve inwardly will change outer reality.", Author: "Plutarch"},
	{Text: "The only way out is through.", Author: "Robert Frost"},
	{Text: "Fall seven times, stand up eight.", Author: "Japanese Proverb"},
}
